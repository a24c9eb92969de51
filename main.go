package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"portfolio-app/backend/config"
	"portfolio-app/backend/database"
	"portfolio-app/backend/handlers"
	"portfolio-app/backend/logger"
	"portfolio-app/backend/middleware"
)

// Rate limiter for auth endpoints (10 requests per minute)
var authRateLimiter = middleware.NewRateLimiter(10, time.Minute)

func main() {
	// Load configuration; a missing connection string is fatal here, with
	// a message telling the operator which variables are recognized.
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	if err := database.Init(); err != nil {
		log.Fatal("Failed to init database: ", err)
	}

	if err := handlers.InitSession(); err != nil {
		log.Fatal("Failed to init session: ", err)
	}
	handlers.InitStores()

	// Structured logging into the database
	slog.SetDefault(slog.New(logger.NewDBHandler(database.DB)))
	go logger.CleanupOldLogs(database.DB, config.C.Logs.Retention)

	slog.Info("server starting", "source", "main", "listen", config.C.Listen)

	mux := http.NewServeMux()

	// Health check (unauthenticated, for load balancers)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Auth routes (public, rate limited)
	mux.HandleFunc("POST /api/register", authRateLimiter.LimitFunc(handlers.Register))
	mux.HandleFunc("POST /api/login", authRateLimiter.LimitFunc(handlers.Login))
	mux.HandleFunc("POST /api/logout", handlers.Logout)
	mux.HandleFunc("POST /api/password/strength", handlers.PasswordStrength)

	// Navigation state
	mux.HandleFunc("GET /api/nav", handlers.Nav)
	mux.HandleFunc("POST /api/nav", handlers.Navigate)

	// Profile
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(handlers.Profile))
	mux.HandleFunc("POST /api/password", middleware.RequireAuth(handlers.ChangePassword))

	// Market data
	mux.HandleFunc("GET /api/countries", handlers.Countries)
	mux.HandleFunc("GET /api/stocks/search", middleware.RequireAuth(handlers.SearchStocks))
	mux.HandleFunc("GET /api/stocks/{symbol}/history", middleware.RequireAuth(handlers.StockHistory))
	mux.HandleFunc("GET /api/stocks/{symbol}/analysis", middleware.RequireAuth(handlers.StockAnalysis))

	// Portfolios
	mux.HandleFunc("GET /api/portfolios", middleware.RequireAuth(handlers.ListPortfolios))
	mux.HandleFunc("POST /api/portfolios", middleware.RequireAuth(handlers.CreatePortfolio))
	mux.HandleFunc("GET /api/portfolios/{id}", middleware.RequireAuth(handlers.GetPortfolio))
	mux.HandleFunc("DELETE /api/portfolios/{id}", middleware.RequireAuth(handlers.DeletePortfolio))
	mux.HandleFunc("POST /api/portfolios/{id}/holdings", middleware.RequireAuth(handlers.AddHolding))
	mux.HandleFunc("PUT /api/portfolios/{id}/holdings", middleware.RequireAuth(handlers.ReplaceHoldings))
	mux.HandleFunc("DELETE /api/portfolios/{id}/holdings/{symbol}", middleware.RequireAuth(handlers.RemoveHolding))

	// CSRF on state-changing routes, security headers on everything
	csrf := middleware.NewCSRFProtection(config.C.Session.Secret)
	handler := middleware.SecurityHeaders(csrf.Protect(mux))

	fmt.Printf("Server running at %s\n", config.C.Listen)
	if config.C.TLS.Enabled {
		slog.Info("starting server with TLS", "source", "main")
		log.Fatal(http.ListenAndServeTLS(config.C.Listen, config.C.TLS.Cert, config.C.TLS.Key, handler))
	} else {
		log.Fatal(http.ListenAndServe(config.C.Listen, handler))
	}
}
