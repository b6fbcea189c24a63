package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookverse/bookverse/config"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/server"
	"github.com/bookverse/bookverse/store"
	"github.com/bookverse/bookverse/store/db"
	"github.com/bookverse/bookverse/util"
	"github.com/bookverse/bookverse/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const greetingBanner = `
██████   ██████   ██████  ██   ██ ██    ██ ███████ ██████  ███████ ███████
██   ██ ██    ██ ██    ██ ██  ██  ██    ██ ██      ██   ██ ██      ██
██████  ██    ██ ██    ██ █████   ██    ██ █████   ██████  ███████ █████
██   ██ ██    ██ ██    ██ ██  ██   ██  ██  ██      ██   ██      ██ ██
██████   ██████   ██████  ██   ██   ████   ███████ ██   ██ ███████ ███████
`

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:   "bookverse",
		Short: "Bookverse is a community book review and reading tracker server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if _, err := config.GetConfig(); err != nil {
				fmt.Println("Error loading config:", err)
				os.Exit(1)
			}
			if configFile != "" {
				if _, err := config.ParseFile(configFile); err != nil {
					fmt.Println("Error parsing config file:", err)
					os.Exit(1)
				}
			}

			log.Logger = log.NewLogger()
			defer log.Logger.Sync()

			// Tokens signed with an ephemeral secret stop validating on
			// restart, which is acceptable for a first start.
			if config.Opts.JWTSecret == "" {
				secret, err := util.RandomToken(32)
				if err != nil {
					log.Fatal("Error generating JWT secret", zap.Error(err))
				}
				config.Opts.JWTSecret = secret
				log.Warn("jwt_secret is not set, generated an ephemeral one")
			}

			fmt.Print(greetingBanner + "\n")

			database, err := db.NewDB(config.Opts.DSN)
			if err != nil {
				log.Fatal("Error connecting to database", zap.Error(err))
			}
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				log.Fatal("Error migrating database", zap.Error(err))
			}

			s := store.NewStore(database.DB)
			if err := s.Ping(); err != nil {
				log.Fatal("Error pinging database", zap.Error(err))
			}

			pool := worker.NewRecomputePool(s, config.Opts.WorkerPoolSize)
			s.SetJobQueue(pool)

			httpServer, err := server.StartServer(ctx, s, pool)
			if err != nil {
				log.Fatal("Error starting server", zap.Error(err))
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			<-stop

			log.Info("Shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down HTTP server", zap.Error(err))
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
