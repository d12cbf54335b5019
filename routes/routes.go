package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tempio/commander-tracker/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	gameHandler *handlers.GameHandler,
	statsHandler *handlers.StatsHandler,
	dashboardHandler *handlers.DashboardHandler,
	bracketHandler *handlers.BracketHandler,
	exportHandler *handlers.ExportHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.ListRecentGamesHandler)
		r.Post("/", gameHandler.CreateGameHandler)
		r.Post("/parse-lineup", gameHandler.ParseLineupHandler)
		r.Get("/{gameID}", gameHandler.GetGameHandler)
		r.Put("/{gameID}", gameHandler.UpdateGameHandler)
		r.Delete("/{gameID}", gameHandler.DeleteGameHandler)
	})

	router.Get("/players", gameHandler.ListPlayersHandler)
	router.Get("/commanders", gameHandler.ListCommandersHandler)

	router.Route("/stats", func(r chi.Router) {
		r.Get("/", statsHandler.GetStatsHandler)
		r.Get("/trend", statsHandler.GetPlayerTrendHandler)
	})

	router.Route("/dashboard", func(r chi.Router) {
		r.Get("/classic", dashboardHandler.GetClassicHandler)
		r.Get("/bracket", dashboardHandler.GetBracketHandler)
		r.Get("/player/{player}", dashboardHandler.GetPlayerHandler)

		r.Get("/classic/page", dashboardHandler.GetClassicPageHandler)
		r.Get("/bracket/page", dashboardHandler.GetBracketPageHandler)
		r.Get("/player/{player}/page", dashboardHandler.GetPlayerPageHandler)
	})

	router.Route("/brackets", func(r chi.Router) {
		r.Get("/commanders", bracketHandler.ListSummariesHandler)
		r.Get("/commanders/{commander}", bracketHandler.GetSummaryHandler)
		r.Post("/commanders", bracketHandler.SetBracketHandler)
	})

	router.Route("/export", func(r chi.Router) {
		r.Get("/stats.json", exportHandler.GetStatsJSONHandler)
		r.Get("/games.csv", exportHandler.GetGamesCSVHandler)
		r.Post("/snapshot", exportHandler.PublishSnapshotHandler)
		r.Delete("/snapshot/{id}", exportHandler.DeleteSnapshotHandler)
	})

	router.Get("/ws", webSocketHandler.ServeWs)
}
