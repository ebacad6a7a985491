package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/astraldata/biograph/errors"
	"github.com/astraldata/biograph/logger"
	"github.com/astraldata/biograph/server"
	"github.com/astraldata/biograph/version"
)

// ServeCmd starts the graph query server
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the knowledge graph query server",
	Long: `Launch the HTTP/WebSocket server. Clients query the graph, search
nodes, enumerate paths, and receive refresh notifications when the cached
OSDR records change on disk.`,
	RunE: runServe,
}

var servePort int

func init() {
	ServeCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
	ServeCmd.Flags().String("data-dir", "", "Data directory with cached records (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Data.Dir = dataDir
	}

	engine, store, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", version.Get().String())
	fmt.Printf("Serving knowledge graph on http://localhost:%d (data: %s)\n", cfg.Server.Port, cfg.Data.Dir)

	srv := server.New(cfg.Server, cfg.Graph.Paths, engine, store, logger.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return errors.Wrap(err, "server exited")
	}
	return nil
}
