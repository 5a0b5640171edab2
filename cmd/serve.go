package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/kaylaburzese/portfolio/internal/analytics"
	"github.com/kaylaburzese/portfolio/internal/config"
	"github.com/kaylaburzese/portfolio/internal/content"
	"github.com/kaylaburzese/portfolio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		gin.SetMode(cfg.Mode)

		portfolio, err := content.Load(cfg.Content.Path)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}

		var stats *analytics.Store
		if cfg.Analytics.Enabled {
			stats, err = analytics.Open(cfg.Analytics.DBPath)
			if err != nil {
				return fmt.Errorf("opening analytics: %w", err)
			}
			defer stats.Close()
			log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")

			retention := time.Duration(cfg.Analytics.RetentionDays) * 24 * time.Hour
			go func() {
				n, err := stats.Cleanup(context.Background(), retention)
				if err != nil {
					log.Printf("Error cleaning up old visitor data: %v", err)
					return
				}
				if n > 0 {
					log.Printf("Privacy cleanup: Removed %d visitor records older than %d days", n, cfg.Analytics.RetentionDays)
				}
			}()
		} else {
			log.Println("Visitor tracking disabled")
		}

		srv, err := server.New(cfg, portfolio, stats)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
