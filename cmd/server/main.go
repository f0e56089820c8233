package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/cutedoc/internal/api"
	"github.com/dgallion1/cutedoc/internal/config"
	"github.com/dgallion1/cutedoc/internal/doctree"
	"github.com/dgallion1/cutedoc/internal/enhance"
	"github.com/dgallion1/cutedoc/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	path := os.Getenv("CUTEDOC_CONFIG")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Error("failed to load configuration", "path", path, "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Static builds carry no toggle links; those need the server.
	enh := enhance.New(doctree.Classifier{WholeWords: cfg.WholeWordKeywords}, cfg.ImagesPath, "", log)
	orch := pipeline.NewOrchestrator(cfg, enh, log)
	orch.Start(ctx)
	defer orch.Stop()

	srv := api.NewServer(orch, log, cfg)

	log.Info("starting cutedoc", "port", cfg.Port, "docs_dir", cfg.DocsDir)
	if err := api.ListenAndServe(ctx, srv, cfg.Port, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
