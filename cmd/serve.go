package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/parking-dashboard/internal/config"
	"github.com/sells-group/parking-dashboard/internal/dashboard"
	"github.com/sells-group/parking-dashboard/internal/prepare"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Prepare the dataset once and serve the dashboards",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ds, err := prepare.Run(cfg)
		if err != nil {
			return err
		}
		layer, err := loadOptionalCCTV(cfg)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           dashboard.New(cfg, ds, layer).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("run_id", ds.RunID),
			zap.Bool("cctv", layer != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// loadOptionalCCTV loads the CCTV layer when its file is configured and
// present. A missing file only disables the CCTV page.
func loadOptionalCCTV(c *config.Config) (*prepare.CCTVLayer, error) {
	if c.CCTV.Path == "" {
		return nil, nil
	}
	if _, err := os.Stat(c.CCTV.Path); errors.Is(err, fs.ErrNotExist) {
		zap.L().Warn("cctv file not found, cctv page disabled", zap.String("path", c.CCTV.Path))
		return nil, nil
	}
	return prepare.RunCCTV(c)
}
