package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/burrowHQ/burrowland-sub002/handler"
	"github.com/burrowHQ/burrowland-sub002/handler/hc"
	"github.com/burrowHQ/burrowland-sub002/store/asset"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run burrowland api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		assetStore := asset.Cache(provideAssetStore(database), time.Second)
		accountStore := provideAccountStore(database)
		batchStore := provideBatchStore(database)
		eventStore := provideEventStore(database)

		svr := handler.New(provideSystem(rootCmd.Version), assetStore, accountStore, batchStore, eventStore, provideOracleService())

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		mux.Mount("/hc", hc.Handle(rootCmd.Version))
		mux.Mount("/api", svr.HandleRestAPI())

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.App.Port
		}
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		done := make(chan struct{}, 1)
		go func() {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		}()

		logrus.Infoln("serve at", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 0, "server port, defaults to the config value")
}
