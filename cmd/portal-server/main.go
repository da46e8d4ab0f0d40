package main

import (
	"log"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/router"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/env"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/jwt"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/queue"
)

func main() {
	env.CheckRequired()
	jwt.Init()

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	server := api.NewAPIServer(
		":81",
		queueManager,
		db,
		nil,
		router.UtilsRoutes("/api/portal/v1"),
		router.AuthRoutes("/api/portal/v1"),
		router.TicketRoutes("/api/portal/v1"),
		router.WebhookRoutes("/api/portal/v1"),
		router.DashboardRoutes("/api/portal/v1"),
		router.AttachmentRoutes("/api/portal/v1"),
		router.TemplateRoutes("/api/portal/v1"),
		router.DocumentRoutes("/api/portal/v1"),
	)

	server.Run()
}
