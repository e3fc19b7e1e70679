package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rankmath/repair-action-scheduler/internal/interfaces/console"
	"github.com/rankmath/repair-action-scheduler/internal/interfaces/rest"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the repair notice over HTTP",
	Long: `Serve POST /api/notices, GET /api/status and GET /api/schema/:table.

Each POST /api/notices is one invocation of the repair tool. /api requires
a bearer token signed with http.jwt_secret (see "ras token"); serve will not
start without one.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	v.BindPFlag("http.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.HTTP.JWTSecret == "" {
		return apperrors.NewValidationError("http.jwt_secret", "required by serve, since POST /api/notices can reset tables")
	}

	// Notices are returned to the HTTP caller and echoed to the server log
	a, err := newApp(cmd.Context(), console.NewNotifier(os.Stderr))
	if err != nil {
		return err
	}
	defer a.Close()

	gin.SetMode(gin.ReleaseMode)
	handler := rest.NewNoticeHandler(a.repair, a.cfg.DB.Prefix, a.charsetCollate)
	router := rest.NewRouter(handler, []byte(a.cfg.HTTP.JWTSecret))

	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Notice server listening on %s", a.cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Println("Server exiting")
	return nil
}
