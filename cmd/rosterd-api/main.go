package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/RosterIO/rosterd/internal/artifacts"
	"github.com/RosterIO/rosterd/internal/config"
	httpserver "github.com/RosterIO/rosterd/internal/http"
	v1 "github.com/RosterIO/rosterd/internal/http/v1"
	"github.com/RosterIO/rosterd/internal/runs"
	"github.com/RosterIO/rosterd/internal/security/auth"
	"github.com/RosterIO/rosterd/internal/solver"
	"github.com/RosterIO/rosterd/internal/solver/remote"
	"github.com/RosterIO/rosterd/internal/store"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}

	var creds *auth.Credentials
	if len(cfg.JWTSecret) == 0 {
		logger.Warn("ROSTERD_JWT_SECRET not set: authentication is disabled")
	} else {
		creds, err = auth.LoadCredentials(cfg.CredentialsFile, cfg.AdminUser, cfg.AdminPasswordHash)
		if err != nil {
			logger.Fatal("load credentials", zap.Error(err))
		}
	}

	local := solver.New(logger)

	var remoteSolver solver.Remote
	var solverHealth func() error
	if cfg.SolverURL != "" {
		rc := remote.NewClient(cfg.SolverURL, cfg.SolverTimeout, logger)
		remoteSolver = rc
		solverHealth = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return rc.Health(ctx)
		}
	} else {
		logger.Info("no external solver configured, using greedy heuristic only")
	}

	janitor := runs.NewJanitor(runs.Default, cfg.RunRetention, cfg.JanitorInterval, logger)
	go janitor.Start(context.Background())

	srv := httpserver.NewServer(v1.Deps{
		Store:          st,
		Runs:           runs.Default,
		Artifacts:      artifacts.NewService(cfg.DataDir + "/runs"),
		Orchestrator:   solver.NewOrchestrator(remoteSolver, local, logger),
		Local:          local,
		Credentials:    creds,
		JWTSecret:      []byte(cfg.JWTSecret),
		TokenTTL:       cfg.TokenTTL,
		RequestTimeout: cfg.RequestTimeout,
		SolverHealth:   solverHealth,
		Log:            logger,
	})

	logger.Info("rosterd-api listening", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
