// Package api assembles the chi router for the tournament engine's
// HTTP transport (SPEC_FULL.md §4.9).
package api

import (
	"github.com/dosada05/swiss-tournament-engine/handlers"
	"github.com/dosada05/swiss-tournament-engine/middleware"
	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/{id}/standings", tournamentHandler.Standings)

		r.Group(func(authRouter chi.Router) {
			authRouter.Use(middleware.Authenticate)
			authRouter.Use(middleware.Authorize(models.RoleOrganizer))

			authRouter.Post("/", tournamentHandler.CreateTournament)
			authRouter.Post("/{id}/players", tournamentHandler.AddPlayer)
			authRouter.Patch("/{id}/players/{playerID}/withdraw", tournamentHandler.WithdrawPlayer)
			authRouter.Patch("/{id}/players/{playerID}/reactivate", tournamentHandler.ReactivatePlayer)
			authRouter.Post("/{id}/rounds/next", tournamentHandler.PairNextRound)
			authRouter.Patch("/{id}/rounds/{round}/reassign", tournamentHandler.Reassign)
			authRouter.Post("/{id}/rounds/{round}/results", tournamentHandler.RecordResults)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
