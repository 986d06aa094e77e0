package server

import (
	"context"
	"log/slog"

	"pagesmith/app/agent"
	"pagesmith/app/api"
	"pagesmith/app/middleware"
	"pagesmith/model"
	"pagesmith/page"
	"pagesmith/store"
	"pagesmith/types"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const bodyLimit = 1 << 20

type Server struct {
	listenAddr string
	logger     *slog.Logger
	app        *fiber.App
	journal    store.Journal
}

// NewServer wires the HTTP routes. The generator is the remote model and the
// journal receives every successful generation.
func NewServer(cfg *types.Config, gen model.Generator, journal store.Journal, logger *slog.Logger) *Server {
	opts := []agent.Option{agent.WithLogger(logger)}
	if cfg.MaxPromptTokens > 0 {
		counter := model.NewTiktokenCounter(cfg.LLM.Model)
		if _, err := counter.Load(); err != nil {
			logger.Warn("token encoding unavailable, retrying per request", "error", err)
		}
		opts = append(opts, agent.WithTokenBudget(counter, cfg.MaxPromptTokens))
	}

	var (
		app = fiber.New(fiber.Config{
			ErrorHandler:          api.ErrorHandler,
			BodyLimit:             bodyLimit,
			DisableStartupMessage: true,
		})
		pages              = page.NewStore(cfg.PublicDir)
		checkHandler       = api.NewCheckHandler()
		createHandler      = api.NewCreateHandler(agent.New(gen, opts...), pages, journal, cfg.LLM.Model, logger)
		generationsHandler = api.NewGenerationsHandler(journal)
		check              = app.Group("/check")
		apiv1              = app.Group("/api")
	)

	app.Use(recover.New())
	app.Use(fiberlog.New())

	check.Get("/healthy", checkHandler.HandleHealthy)
	apiv1.Post("/create", createHandler.HandleCreate)
	apiv1.Get("/generations", generationsHandler.HandleList)

	app.Use(middleware.PlugStatic("/", "/"+page.GeneratedDir+"/"))
	app.Static("/", cfg.PublicDir)

	return &Server{
		listenAddr: ":" + cfg.Port,
		logger:     logger,
		app:        app,
		journal:    journal,
	}
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.logger.Info("server listening", "addr", s.listenAddr)
	return s.app.Listen(s.listenAddr)
}

func (s *Server) Stop(ctx context.Context) {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		s.logger.Error("error to stop server", "error", err)
	}
	if err := s.journal.Close(); err != nil {
		s.logger.Error("error to close journal", "error", err)
	}
	s.logger.Info("server stopped")
}
