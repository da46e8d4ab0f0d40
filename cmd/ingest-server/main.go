package main

import (
	"log"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/api/router"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/env"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/queue"
)

func main() {
	env.CheckRequired()

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	server := api.NewAPIServer(
		":82",
		queueManager,
		db,
		nil,
		router.UtilsRoutes("/api/ingest/v1"),
		router.IngestRoutes("/api/ingest/v1"),
	)

	server.Run()
}
