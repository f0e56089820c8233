package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/dgallion1/cutedoc/internal/api"
	"github.com/dgallion1/cutedoc/internal/doctree"
	"github.com/dgallion1/cutedoc/internal/enhance"
	"github.com/dgallion1/cutedoc/internal/pipeline"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the docs directory with per-visitor panel preferences",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "override the listen port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := newLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	enh := enhance.New(doctree.Classifier{WholeWords: cfg.WholeWordKeywords}, cfg.ImagesPath, "", log)
	orch := pipeline.NewOrchestrator(cfg, enh, log)
	orch.Start(ctx)
	defer orch.Stop()

	return api.ListenAndServe(ctx, api.NewServer(orch, log, cfg), cfg.Port, log)
}
