package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/config"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap"
)

const component = "API"

type application struct {
	config  apiConfig
	console *siciap.Console
	log     *logger.Logger

	// the console holds a single database handle and is not safe for
	// concurrent use
	mu sync.Mutex
}

type apiConfig struct {
	addr          string
	maxUploadSize int64
	db            config.DB
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/datasets", app.handleGetDatasetCounts)
		r.Post("/ingestion/{dataset}", app.handleCreateIngestion)
		r.Route("/stock", func(r chi.Router) {
			r.Get("/", app.handleGetStock)
			r.Get("/bands", app.handleGetStockBands)
		})
		r.Route("/execution", func(r chi.Router) {
			r.Get("/", app.handleGetExecution)
			r.Get("/calls", app.handleGetCallRollup)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", app.handleGetOrders)
			r.Get("/overdue", app.handleGetOverdueSummary)
		})
		r.Get("/requests", app.handleGetRequests)
		r.Route("/calls", func(r chi.Router) {
			r.Get("/", app.handleGetCalls)
			r.Get("/{id}", app.handleGetCall)
			r.Put("/{id}", app.handleUpsertCall)
		})
		r.Get("/products/{code}", app.handleGetProduct)
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.log.Info(component, "Server started: addr=%s database=%s", app.config.addr, app.config.db.Redacted())
	return srv.ListenAndServe()
}
