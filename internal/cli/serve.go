package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/propwatch/propwatch/internal/listing"
	"github.com/propwatch/propwatch/internal/logging"
	"github.com/propwatch/propwatch/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int
	var dev bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the HTTP API server: catalog search, proximity search, saved searches, and the live listing event stream.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, dev)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().BoolVar(&dev, "dev", false, "human-readable log output")

	return cmd
}

func runServe(port int, dev bool) error {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	if os.Getenv("PW_LOG_JSON") == "true" {
		dev = false
	}
	logging.Setup(dev)

	if v := os.Getenv("PW_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing PW_PORT: %w", err)
		}
		port = p
	}
	if flagDB == "" {
		flagDB = os.Getenv("PW_DB")
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	if n, err := listing.NewRepository(database).Count(); err == nil {
		slog.Info("catalog ready", "listings", n)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(database).ListenAndServe(ctx, port)
}
