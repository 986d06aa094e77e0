package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagesmith/app/server"
	"pagesmith/model"
	"pagesmith/store"
	"pagesmith/types"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 5 * time.Second

func init() {
	mustLoadEnvVariables()
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := types.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	journal, err := openJournal(cfg)
	if err != nil {
		log.Fatal("error to open generation journal: ", err)
	}

	s := server.NewServer(cfg, model.NewOpenAI(cfg.LLM), journal, logger)

	go func() {
		if err := s.Run(); err != nil {
			log.Fatal("error to start server: ", err)
		}
	}()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	<-sigch
	log.Println("Received shutdown signal, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.Stop(ctx)
}

func openJournal(cfg *types.Config) (store.Journal, error) {
	if cfg.Postgres == nil {
		return store.NewMemoryStore(store.DefaultMemoryCapacity), nil
	}

	ctx := context.Background()
	pg, err := store.NewPostgresStore(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, err
	}
	if err := pg.Init(ctx); err != nil {
		pg.Close()
		return nil, err
	}
	return pg, nil
}

// mustLoadEnvVariables reads .env when present; the real environment wins.
func mustLoadEnvVariables() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("Error loading .env file: ", err)
	}
}
