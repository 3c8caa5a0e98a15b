package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/flarexio/agrimithra"
	"github.com/flarexio/agrimithra/persistence/chromem"
	"github.com/flarexio/agrimithra/persistence/filesystem"
	"github.com/flarexio/agrimithra/vector"

	mcpE "github.com/flarexio/agrimithra/mcp"
	httpT "github.com/flarexio/agrimithra/transport/http"
	natsT "github.com/flarexio/agrimithra/transport/nats"
)

func main() {
	cmd := &cli.Command{
		Name:  "agrimithra",
		Usage: "AgriMithra agricultural advisory service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Path to the AgriMithra service",
			},
			&cli.StringFlag{
				Name:    "nats",
				Usage:   "NATS server URL, the NATS transport is disabled when empty",
				Sources: cli.EnvVars("NATS_URL"),
			},
			&cli.BoolFlag{
				Name:  "http",
				Usage: "Enable HTTP transport",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "http-addr",
				Usage:   "HTTP server address",
				Value:   ":5000",
				Sources: cli.EnvVars("AGRIMITHRA_HTTP_ADDR"),
			},
		},
		Action: run,
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err.Error())
	}
}

func loadConfig(path string) (agrimithra.Config, error) {
	cfg := agrimithra.Config{
		Corpus: agrimithra.CorpusConfig{
			Seed: true,
		},
		Vector: vector.Config{
			Provider: vector.ProviderHashing,
		},
	}

	f, err := os.Open(filepath.Join(path, "config.yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return cfg, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		path = filepath.Join(homeDir, ".flarex", "agrimithra")
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)

	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = filepath.Join(path, "knowledge")
	}

	if cfg.Vector.Path == "" {
		cfg.Vector.Path = filepath.Join(cfg.Corpus.Path, filesystem.IndexFile)
	}

	repo, err := filesystem.NewRepository(cfg.Corpus.Path)
	if err != nil {
		return err
	}

	var index vector.Index

	embedder, err := chromem.NewEmbedder(cfg.Vector)
	switch {
	case errors.Is(err, vector.ErrEmbedderUnavailable):
		log.Warn("no embedding provider, using lexical matching", zap.Error(err))

	case err != nil:
		return err

	default:
		idx, err := chromem.NewIndex(cfg.Vector, embedder)
		if err != nil {
			return err
		}

		index = idx
	}

	svc, err := agrimithra.NewService(ctx, cfg, repo, embedder, index)
	if err != nil {
		return err
	}
	defer svc.Close()

	svc = agrimithra.LoggingMiddleware(log)(svc)

	endpoints := agrimithra.MakeEndpoints(svc)

	// Add NATS Transport
	if natsURL := cmd.String("nats"); natsURL != "" {
		idBytes, err := os.ReadFile(filepath.Join(path, "id"))
		if err != nil {
			return err
		}

		edgeID := strings.TrimSpace(string(idBytes))

		nc, err := nats.Connect(natsURL,
			nats.Name("AgriMithra Server - "+edgeID),
			nats.UserCredentials(filepath.Join(path, "user.creds")),
		)

		if err != nil {
			return err
		}
		defer nc.Drain()

		srv, err := micro.AddService(nc, micro.Config{
			Name:    "agrimithra",
			Version: httpT.Version,
		})

		if err != nil {
			return err
		}
		defer srv.Stop()

		topic := "edges." + edgeID + ".agrimithra"

		root := srv.AddGroup(topic)
		natsT.AddEndpoints(root, *endpoints)

		log.Info("nats transport ready", zap.String("topic", topic))
	}

	if cmd.Bool("http") {
		r := gin.Default()
		httpT.AddRouters(r, *endpoints)

		endpoints := make(map[mcp.MCPMethod]mcpE.MCPEndpoint)
		endpoints[mcp.MethodInitialize] = mcpE.InitializeEndpoint(svc)
		endpoints[mcp.MethodPing] = mcpE.PingEndpoint(svc)
		endpoints[mcp.MethodToolsList] = mcpE.ListToolsEndpoint(svc)
		endpoints[mcp.MethodToolsCall] = mcpE.CallToolEndpoint(svc)
		httpT.AddStreamableRouters(r, endpoints)

		httpAddr := cmd.String("http-addr")
		go r.Run(httpAddr)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sign := <-quit

	log.Info("graceful shutdown", zap.String("signal", sign.String()))
	return nil
}
