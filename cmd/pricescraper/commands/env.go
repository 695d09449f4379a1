package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"pricescraper/internal/components/chrono"
	"pricescraper/internal/config"
	"pricescraper/internal/scrapeclient"
	"pricescraper/lib/configutil"
	"pricescraper/lib/restyutil"
	otelsetup "pricescraper/lib/telemetry"
)

type environment struct {
	cfg    config.Config
	client *scrapeclient.Client
	clock  chrono.API
	otel   otelsetup.Telemetry
}

func resolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	found, err := configutil.FindRecursively(config.DefaultName)
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultName
	}
	if err != nil {
		slog.Warn("failed to search for config", "err", err)
		return config.DefaultName
	}
	return found
}

func setup(ctx context.Context, path, endpointOverride string) (environment, error) {
	path = resolveConfigPath(path)
	cfg, err := config.Load(path)
	if err != nil {
		return environment{}, err
	}
	if endpointOverride != "" {
		cfg.Endpoint = endpointOverride
		err = cfg.Validate()
		if err != nil {
			return environment{}, err
		}
	}
	slog.Debug("loaded config", "path", path, "endpoint", cfg.Endpoint)

	clock, err := chrono.NewStandardImpl(cfg.Timezone)
	if err != nil {
		return environment{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	opts, err := cfg.ClientOptions()
	if err != nil {
		return environment{}, err
	}
	if cfg.DumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(cfg.DumpDir)
		if err != nil {
			return environment{}, fmt.Errorf("prepare dump dir: %w", err)
		}
		opts.Output = output
	}
	client, err := scrapeclient.NewClient(opts)
	if err != nil {
		return environment{}, err
	}

	tel, err := otelsetup.Setup(ctx, "pricescraper", cfg.Telemetry)
	if err != nil {
		return environment{}, fmt.Errorf("setup telemetry: %w", err)
	}

	return environment{
		cfg:    cfg,
		client: client,
		clock:  clock,
		otel:   tel,
	}, nil
}

func (e environment) close(ctx context.Context) {
	err := e.otel.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
}
