package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bookstore/internal/catalog"
	"bookstore/internal/httpx"
	"bookstore/internal/platform/googlebooks"
	"bookstore/internal/platform/logger"
	"bookstore/internal/record"
	"bookstore/internal/web"
)

func main() {
	_ = godotenv.Load(".env.local")

	log := logger.New()
	defer func() { _ = log.Sync() }()

	serverAddress := getEnv("APP_ADDR", ":8080")
	booksFile := getEnv("BOOKS_FILE", "data/books.json")
	catalogBaseURL := getEnv("GOOGLE_BOOKS_API_URL", googlebooks.DefaultBaseURL)
	userAgent := getEnv("HTTP_USER_AGENT", "bookstore/1.0")
	outboundRPS := getEnvFloat("CATALOG_RPS", 5)
	inboundRPS := getEnvFloat("RATE_LIMIT_RPS", 20)
	inboundBurst := getEnvInt("RATE_LIMIT_BURST", 40)

	repo, err := record.NewFileRepository(booksFile)
	if err != nil {
		log.Fatal("open record store", zap.Error(err))
	}

	client := googlebooks.NewClient(catalogBaseURL, userAgent, outboundRPS)
	catalogService := catalog.NewService(client)

	recordHandler := record.NewHandler(repo, log)
	webHandler, err := web.NewHandler(catalogService, log)
	if err != nil {
		log.Fatal("load templates", zap.Error(err))
	}

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Handle("/api/books", httpx.MethodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(recordHandler.List),
		http.MethodPost:   http.HandlerFunc(recordHandler.Create),
		http.MethodPut:    http.HandlerFunc(recordHandler.Update),
		http.MethodDelete: http.HandlerFunc(recordHandler.Delete),
	}))

	webHandler.Register(router)

	rateLimit := httpx.NewRateLimitMiddleware(inboundRPS, inboundBurst)
	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		rateLimit.Middleware,
		httpx.SecurityHeadersMiddleware,
		httpx.RequestSizeLimitMiddleware(1<<20),
	)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("starting server", zap.String("addr", serverAddress))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
