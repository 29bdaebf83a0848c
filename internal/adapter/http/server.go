// Package adapthttp is the driving HTTP adapter. It validates the caller,
// resolves a user ID and routes requests to the application services; no
// aggregation logic lives here.
package adapthttp

import (
	"net/http"

	"go.uber.org/zap"

	"nutristats/internal/app"
)

// Server routes requests to the application services.
type Server struct {
	statistics   *app.StatisticsService
	weight       *app.WeightService
	consumptions *app.ConsumptionService
	auth         *app.AuthService
	log          *zap.SugaredLogger
}

// New creates a Server wired to the given application services. A nil auth
// service disables token verification: the user ID is then taken from the
// X-User-ID header (tests and local development only).
func New(ss *app.StatisticsService, ws *app.WeightService, cs *app.ConsumptionService, auth *app.AuthService, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{statistics: ss, weight: ws, consumptions: cs, auth: auth, log: log}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/statistics/sync", s.handleStatisticsSync)
	api.HandleFunc("/statistics/daily", s.handleStatisticsDaily)
	api.HandleFunc("/weight/history", s.handleWeightHistory)
	api.HandleFunc("/profile", s.handleProfile)
	api.HandleFunc("/consumptions", s.handleConsumptions)
	api.HandleFunc("/consumptions/", s.handleConsumptionByID)

	root := http.NewServeMux()
	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	root.Handle("/api/", http.StripPrefix("/api", s.authMiddleware(api)))

	return s.requestLogger(root)
}
