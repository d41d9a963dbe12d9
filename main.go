package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/leximind/internal/database"
	"github.com/example/leximind/internal/excel"
	"github.com/example/leximind/internal/feedback"
	"github.com/example/leximind/internal/logger"
	"github.com/example/leximind/internal/quiz"
	"github.com/example/leximind/internal/scheduler"
	"github.com/example/leximind/internal/server"
	"github.com/example/leximind/internal/session"
	"github.com/example/leximind/internal/spaced_repetition"
)

func main() {
	importFile := flag.String("import", "", "import vocabulary from an Excel or CSV file and exit")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Connect(os.Getenv("DB_TYPE"), os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	words := database.NewWordRepository(db)
	learners := database.NewLearnerRepository(db)
	progress := database.NewProgressRepository(db)
	scores := database.NewScoreRepository(db)
	attempts := database.NewAttemptRepository(db)
	stats := database.NewStatisticsRepository(db)

	if *importFile != "" {
		cfg := excel.DefaultImportConfig()
		cfg.FilePath = *importFile
		result, err := excel.ImportWords(context.Background(), words, cfg)
		if err != nil {
			log.Fatal("import failed", "file", *importFile, "error", err)
		}
		log.Info("import complete",
			"file", *importFile,
			"processed", result.TotalProcessed,
			"created", result.Created,
			"updated", result.Updated,
			"skipped", result.Skipped,
			"errors", len(result.Errors),
		)
		for _, e := range result.Errors {
			log.Warn("import row skipped", "reason", e)
		}
		return
	}

	svc := session.NewService(
		log,
		spaced_repetition.NewScheduler(progress, spaced_repetition.NewSM2(), nil),
		quiz.NewSelector(nil),
		feedback.NewClassifier(nil),
		words, learners, scores, attempts,
		nil,
	)

	snapshots := scheduler.New(log, learners, progress, stats)
	snapshots.Start()
	defer snapshots.Stop()

	releaseMode := os.Getenv("LOG_MODE") == "prod"
	router := server.NewRouter(server.RouterConfig{
		Handler:      server.NewHandler(log, svc, words, learners, snapshots),
		CORSOrigins:  splitOrigins(os.Getenv("CORS_ORIGINS")),
		ReleaseMode:  releaseMode,
		EnableAccess: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
