package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"lodgekeeper/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies pending SQL migrations with the atlas CLI. The binary must be on
// PATH; see https://atlasgo.io/getting-started for installation.
func main() {
	dir := flag.String("dir", "file://migrations", "migration directory URL")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	workdir, err := atlasexec.NewWorkingDir()
	if err != nil {
		slog.Error("failed to prepare atlas working directory", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := workdir.Close(); err != nil {
			slog.Warn("failed to clean up atlas working directory", "error", err)
		}
	}()

	client, err := atlasexec.NewClient(workdir.Path(), "atlas")
	if err != nil {
		slog.Error("failed to create atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: *dir,
	})
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target)
}
