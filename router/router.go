// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/natemartinsf/auto-bean/cliparse"
	"github.com/natemartinsf/auto-bean/handlers"
	"github.com/natemartinsf/auto-bean/middleware"
	"github.com/natemartinsf/auto-bean/ratelimit"
	"github.com/natemartinsf/auto-bean/reveal"
	"github.com/natemartinsf/auto-bean/scope"
	"github.com/natemartinsf/auto-bean/shortcode"
	"github.com/natemartinsf/auto-bean/store"
)

// NewRouter wires every route. limiter guards the public write endpoints;
// the caller owns it and must Stop it on shutdown.
func NewRouter(db *sql.DB, cfg cliparse.Config, limiter *ratelimit.KeyedRateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithLogging)
	r.Use(chimw.Recoverer)
	r.Use(corsHandler(cfg.CORSOrigins))

	// Initialize handlers
	st := store.New(db)
	authz := scope.NewAuthorizer(st, scope.Model(cfg.AuthModel))
	codes := shortcode.New(st)

	eventHandler := handlers.NewEventHandler(st, authz, codes, cfg)
	adminHandler := handlers.NewAdminHandler(st, authz)
	revealHandler := handlers.NewRevealHandler(reveal.New(st, authz))
	votingHandler := handlers.NewVotingHandler(st, codes)
	manageHandler := handlers.NewManageHandler(st, codes)
	resultsHandler := handlers.NewResultsHandler(st, codes)
	accessHandler := handlers.NewAccessRequestHandler(st)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("auto-bean API v1"))
	})

	// Public links (event, manage, brewer)
	r.Get("/e/{code}", resultsHandler.GetEvent)
	r.Get("/e/{code}/results", resultsHandler.GetResults)
	r.Get("/m/{code}", manageHandler.GetManage)
	r.Get("/b/{code}", resultsHandler.GetBrewerByCode)
	r.Get("/brewer/{token}", resultsHandler.GetBrewerByToken)

	// Voting (anonymous)
	r.Get("/v/{code}", votingHandler.ResolveVoterCode)
	r.Get("/vote/{eventID}/{voterID}", votingHandler.GetBallot)

	// Unauthenticated writes share the per-client limit
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter))
		r.Post("/m/{code}/beers", manageHandler.AddBeer)
		r.Put("/vote/{eventID}/{voterID}/beers/{beerID}", votingHandler.CastVote)
		r.Put("/vote/{eventID}/{voterID}/beers/{beerID}/feedback", votingHandler.SaveFeedback)
		r.Post("/access-requests", accessHandler.Create)
	})

	// Admin (bearer token)
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(authz, cfg.JWTSecret))

		r.Get("/me", adminHandler.Me)
		r.Get("/access-requests", adminHandler.ListAccessRequests)

		r.Get("/organizations", adminHandler.ListOrganizations)
		r.Post("/organizations", adminHandler.CreateOrganization)
		r.Delete("/organizations/{id}", adminHandler.DeleteOrganization)

		r.Get("/admins", adminHandler.ListAdmins)
		r.Post("/admins", adminHandler.CreateAdmin)
		r.Delete("/admins/{id}", adminHandler.DeleteAdmin)
		r.Put("/admins/{id}/organization", adminHandler.ReassignAdmin)

		r.Get("/events", eventHandler.ListEvents)
		r.Post("/events", eventHandler.CreateEvent)
		r.Route("/events/{id}", func(r chi.Router) {
			r.Get("/", eventHandler.GetEvent)
			r.Delete("/", eventHandler.DeleteEvent)
			r.Put("/blind-tasting", eventHandler.SetBlindTasting)
			r.Post("/beers", eventHandler.AddBeer)
			r.Delete("/beers/{beerID}", eventHandler.DeleteBeer)
			r.Post("/voters", eventHandler.ProvisionVoters)
			r.Post("/test-voter", eventHandler.CreateTestVoter)
			r.Get("/admins", eventHandler.ListEventAdmins)
			r.Post("/admins", eventHandler.AssignEventAdmin)
			r.Delete("/admins/{adminID}", eventHandler.UnassignEventAdmin)
			r.Post("/reveal/advance", revealHandler.Advance)
			r.Post("/reveal/reset", revealHandler.Reset)
		})
	})

	return r
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	// Credentials cannot be combined with a wildcard origin
	if len(origins) == 0 || slices.Contains(origins, "*") {
		opts.AllowedOrigins = []string{"*"}
		opts.AllowCredentials = false
	}
	return cors.Handler(opts)
}
