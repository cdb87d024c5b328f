package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/iskolar-ocr/internal/audit"
	"github.com/iskolar-ocr/internal/db"
	"github.com/iskolar-ocr/internal/web"
)

func createServeCmd() *cobra.Command {
	var (
		configFile string
		policyFile string
		memory     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the eligibility HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := web.DefaultConfig()
			if configFile != "" {
				loaded, err := web.LoadConfig(configFile)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			engine, err := newEngine()
			if err != nil {
				return err
			}
			policy, err := basePolicy(policyFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var store audit.Store
			if memory {
				logger.Warn("using in-memory check store; history is lost on restart")
				store = audit.NewMemoryStore()
			} else {
				conn, err := db.NewConnection(ctx, db.SettingsFromEnv())
				if err != nil {
					return err
				}
				defer conn.Close()
				store = audit.NewPostgresStore(conn.DB, logger)
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			srv := web.NewServer(cfg, web.Deps{
				Engine:   engine,
				Store:    store,
				Policy:   policy,
				Registry: reg,
				Logger:   logger,
			})
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "YAML server config")
	cmd.Flags().StringVar(&policyFile, "policy", "", "YAML policy used when a request carries none")
	cmd.Flags().BoolVar(&memory, "memory", false, "keep check history in memory instead of PostgreSQL")
	return cmd
}
