package api

import (
	"log"
	"net/http"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/queue"
	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/websocket"

	"github.com/prometheus/client_golang/prometheus"
)

// RouteRegistrar mounts one route group onto the server's mux. Each binary
// composes its API from the registrars it needs.
type RouteRegistrar func(mux *http.ServeMux, s *APIServer)

type APIServer struct {
	listenAddr          string
	requestQueueManager *queue.RequestQueueManager
	db                  *database.Database
	routeRegistrars     []RouteRegistrar
	handler             *websocket.Handler
	metrics             *metrics
}

func NewAPIServer(listenAddr string, rqm *queue.RequestQueueManager, db *database.Database, handler *websocket.Handler, registrars ...RouteRegistrar) *APIServer {
	return &APIServer{
		listenAddr:          listenAddr,
		requestQueueManager: rqm,
		db:                  db,
		handler:             handler,
		routeRegistrars:     registrars,
		metrics:             newMetrics(prometheus.DefaultRegisterer, listenAddr, rqm),
	}
}

// Run builds the mux from the registered route groups and serves until the
// listener fails. It does not return under normal operation.
func (s *APIServer) Run() {
	mux := http.NewServeMux()
	for _, reg := range s.routeRegistrars {
		reg(mux, s)
	}
	mux.Handle("/metrics", s.metrics.metricsHandler())

	srv := &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.metrics.instrument(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("api: listening on %s", s.listenAddr)
	if err := srv.ListenAndServe(); err != nil {
		log.Printf("api: server stopped: %v", err)
	}
}

func (s *APIServer) Database() *database.Database {
	return s.db
}

func (s *APIServer) Handler() *websocket.Handler {
	return s.handler
}
