package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/cecscope/internal/config"
	"github.com/danmuck/cecscope/internal/logging"
	"github.com/danmuck/cecscope/internal/observability"
	"github.com/danmuck/cecscope/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decoder over HTTP and websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			level, _ := logging.ParseLevel(cfg.Log.Level)
			logger := observability.InitLogger(cfg.Server.Name, level)
			gin.SetMode(gin.ReleaseMode)

			srv := server.New(server.Options{
				Name:          cfg.Server.Name,
				CorsOrigins:   cfg.Server.CorsOrigins,
				MaxFrameBytes: cfg.Server.MaxFrameBytes,
				MaxBatch:      cfg.Server.MaxBatch,
				Logger:        &logger,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a cecscope TOML config")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides the config")
	return cmd
}
