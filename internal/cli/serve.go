package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/accountdesk/internal/config"
	"github.com/rshade/accountdesk/internal/source"
	"github.com/rshade/accountdesk/internal/transport/httpapi"
	"github.com/rshade/accountdesk/internal/transport/rpc"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

// ErrNothingToServe is returned when both listeners are disabled.
var ErrNothingToServe = errors.New("serve needs --http or --grpc")

func newServeCmd() *cobra.Command {
	var httpAddr, grpcAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured account source over HTTP and gRPC",
		Long: `Exposes the configured account source as a REST API (gin) and a gRPC
service. Another accountdesk can then use it with source kind http or grpc.
Pass an empty address to disable a listener.`,
		Example: `  # Serve on the configured addresses
  accountdesk serve

  # HTTP only, on a custom port
  accountdesk serve --http 127.0.0.1:8081 --grpc ""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if !cmd.Flags().Changed("http") {
				httpAddr = cfg.Server.HTTPAddr
			}
			if !cmd.Flags().Changed("grpc") {
				grpcAddr = cfg.Server.GRPCAddr
			}
			return runServe(cmd.Context(), cfg, httpAddr, grpcAddr)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "HTTP listen address (default from config)")
	cmd.Flags().StringVar(&grpcAddr, "grpc", "", "gRPC listen address (default from config)")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, httpAddr, grpcAddr string) error {
	if httpAddr == "" && grpcAddr == "" {
		return ErrNothingToServe
	}

	src, closeSrc, err := openSource(ctx, cfg.Source)
	if err != nil {
		return err
	}
	defer func() { _ = closeSrc() }()

	var lis net.Listener
	if grpcAddr != "" {
		lis, err = net.Listen("tcp", grpcAddr)
		if err != nil {
			return fmt.Errorf("listening on %s: %w", grpcAddr, err)
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	if httpAddr != "" {
		srv := newHTTPServer(httpAddr, src, cfg.Server)
		g.Go(func() error { return serveHTTP(gCtx, srv) })
	}
	if lis != nil {
		g.Go(func() error { return serveGRPC(gCtx, lis, src) })
	}

	return g.Wait()
}

func newHTTPServer(addr string, src source.Source, cfg config.ServerConfig) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(src, httpapi.Options{
		JWTSecret:    []byte(cfg.JWTSecret),
		AllowOrigins: cfg.AllowOrigins,
	})

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func serveHTTP(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Ctx(ctx).Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info().Ctx(ctx).Msg("http server stopped")
	return nil
}

func serveGRPC(ctx context.Context, lis net.Listener, src source.Source) error {
	gs := rpc.Register(src)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Ctx(ctx).Str("addr", lis.Addr().String()).Msg("grpc server listening")
		if err := gs.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	gs.GracefulStop()
	logger.Info().Ctx(ctx).Msg("grpc server stopped")
	return nil
}
