package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/LevanIlashvili/stylish-go-app/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Wallet *handler.WalletHandler
	Game   *handler.GameHandler
	Info   *handler.InfoHandler
}

// SetupRouter sets up router with handlers
func SetupRouter(h Handlers, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet", h.Wallet.State)
	mux.HandleFunc("/wallet/create", h.Wallet.Create)
	mux.HandleFunc("/wallet/import", h.Wallet.Import)
	mux.HandleFunc("/wallet/reset", h.Wallet.Reset)
	mux.HandleFunc("/wallet/backup", h.Wallet.Backup)
	mux.HandleFunc("/wallet/qr", h.Wallet.QR)
	mux.HandleFunc("/wallet/balance", h.Wallet.Balance)

	// Game endpoints
	mux.HandleFunc("/game", h.Game.Game)
	mux.HandleFunc("/game/create", h.Game.Create)
	mux.HandleFunc("/game/board", h.Game.Board)
	mux.HandleFunc("/game/move", h.Game.Move)
	mux.HandleFunc("/game/pass", h.Game.Pass)
	mux.HandleFunc("/game/abandon", h.Game.Abandon)
	mux.HandleFunc("/game/new", h.Game.NewGame)

	mux.HandleFunc("/leaderboard", h.Info.Leaderboard)
	mux.HandleFunc("/notifications", h.Info.Notifications)

	if logger == nil {
		return mux
	}
	return logRequests(mux, logger)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, logger *slog.Logger) http.Handler {
	logger = logger.With("component", "http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
