package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/sift/internal/core/config"
	"github.com/aevon-lab/sift/internal/dataset"
	datasetapi "github.com/aevon-lab/sift/internal/dataset/api"
	jsonformat "github.com/aevon-lab/sift/internal/dataset/formats/json"
	"github.com/aevon-lab/sift/internal/dataset/formats/protobuf"
	yamlformat "github.com/aevon-lab/sift/internal/dataset/formats/yaml"
	"github.com/aevon-lab/sift/internal/dataset/storage"
	"github.com/aevon-lab/sift/internal/query"
	"github.com/aevon-lab/sift/internal/server"
	"github.com/spf13/cobra"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	ConfigPath string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP query service",
		Long: `Run the HTTP query service.

Settings come from defaults, then the --config YAML file, then SIFT_
environment variables (SIFT_SERVER__PORT=9090 sets server.port).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "sift.yaml", "path to configuration file")

	return cmd
}

func runServe(opts *ServeOptions) error {
	configPath := opts.ConfigPath
	if _, err := os.Stat(configPath); err != nil && os.IsNotExist(err) {
		slog.Warn("Config file not found, using defaults and environment", "path", configPath)
		configPath = ""
	}

	// 1. Load Configuration
	cfg, err := corecfg.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	slog.Info("Loaded config", "config", cfg)

	// 2. Wire dataset registry, query engine and HTTP server
	srv, err := NewServer(cfg)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		return WrapExitError(ExitCommandError, "failed to initialize server", err)
	}

	// 3. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		return WrapExitError(ExitFailure, "server stopped", err)
	}

	slog.Info("Shutdown complete")
	return nil
}

// NewServer builds the HTTP server and its dataset and query routes from cfg.
func NewServer(cfg *corecfg.Config) (*server.Server, error) {
	var repo dataset.Repository
	switch cfg.Datasets.SourceType {
	case "memory":
		repo = storage.NewMemoryRepository()
	case "filesystem":
		repo = storage.NewFileSystemRepository(cfg.Datasets.Path)
	default:
		return nil, fmt.Errorf("unsupported dataset source type %q", cfg.Datasets.SourceType)
	}

	formats := dataset.NewFormatRegistry()
	formats.RegisterFormat(dataset.FormatJSON, jsonformat.NewDecoder())
	formats.RegisterFormat(dataset.FormatYaml, yamlformat.NewDecoder())
	formats.RegisterFormat(dataset.FormatProtobuf, protobuf.NewDecoder())

	registry := dataset.NewRegistryWithCache(repo, formats, cfg.Datasets.CacheCapacity)

	slog.Info("Dataset registry initialized",
		"source", cfg.Datasets.SourceType,
		"path", cfg.Datasets.Path,
		"cache_capacity", cfg.Datasets.CacheCapacity,
		"formats", formats.SupportedFormats(),
	)

	datasetSvc := datasetapi.NewService(registry, cfg.Server.MaxBodySizeMB)
	querySvc := query.NewService(registry, query.Options{
		Connector: cfg.Query.DefaultConnector,
		Scale:     cfg.Query.DefaultScale,
	})

	srv := server.New(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode, registry)
	datasetSvc.RegisterRoutes(srv.Engine)
	querySvc.RegisterRoutes(srv.Engine)

	return srv, nil
}
