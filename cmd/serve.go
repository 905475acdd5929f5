package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/form"
	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/lead"
	"github.com/hackeyzlife02/elfsight-hcp-webhook/pkg/hcp"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Elfsight webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		creator, err := newCreator()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(creator),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting webhook server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(creator *lead.Creator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"service": "elfsight-hcp-webhook",
			"status":  "running",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := cfg.Validate(); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// The Elfsight widget posts its ordered field array here. /test accepts
	// the simplified flat object for manual checks; both shapes go through
	// the same parser and workflow.
	r.Post("/webhook", handleSubmission(creator))
	r.Post("/test", handleSubmission(creator))

	return r
}

// submissionResponse wraps the creator result with a per-request id so a
// webhook delivery can be traced through the logs.
type submissionResponse struct {
	RequestID string `json:"request_id"`
	*lead.Result
}

func handleSubmission(creator *lead.Creator) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		requestID := uuid.NewString()
		log := zap.L().With(zap.String("request_id", requestID))

		payload, err := io.ReadAll(req.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, submissionResponse{
				RequestID: requestID,
				Result:    &lead.Result{Error: "unreadable request body"},
			})
			return
		}

		sub, err := form.Parse(payload)
		if err != nil {
			log.Warn("rejected payload", zap.Error(err))
			writeJSON(w, http.StatusBadRequest, submissionResponse{
				RequestID: requestID,
				Result:    &lead.Result{Error: eris.Cause(err).Error()},
			})
			return
		}

		log.Info("processing submission", zap.Int("fields", len(sub.Fields)))

		result, err := creator.Create(req.Context(), sub)
		writeJSON(w, statusFor(err), submissionResponse{RequestID: requestID, Result: result})
	}
}

// statusFor maps workflow failures to response codes: submitter mistakes
// are 400s, HCP failures are 502s, everything else is a 500.
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var ae *hcp.APIError
	if errors.As(err, &ae) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
