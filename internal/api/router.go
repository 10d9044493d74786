// StudioPulse - Retention and Revenue Analytics for Studio Memberships
// Copyright 2026 StudioPulse Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/studiopulse/studiopulse

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studiopulse/studiopulse/internal/config"
)

// Router assembles the HTTP routes and their middleware stacks.
type Router struct {
	handler    *Handler
	middleware *Middleware
}

// NewRouter builds a router from the handler and API configuration.
func NewRouter(h *Handler, apiCfg *config.APIConfig) *Router {
	return &Router{
		handler: h,
		middleware: NewMiddleware(&MiddlewareConfig{
			CORSAllowedOrigins: apiCfg.CORSOrigins,
			RateLimitRequests:  apiCfg.RateLimit,
			RateLimitWindow:    time.Minute,
		}),
	}
}

// Setup configures all routes and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global stack, applied to every route in order.
	r.Use(RequestLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.middleware.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.middleware.RateLimit())
		r.Use(PrometheusMetrics)
		r.Use(Compression)

		r.Get("/dashboard", router.handler.Dashboard)
		r.Get("/churn", router.handler.Churn)
		r.Get("/projection", router.handler.Projection)
		r.Get("/cohorts", router.handler.Cohorts)
		r.Get("/pool", router.handler.Pool)
		r.Get("/trends", router.handler.Trends)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
