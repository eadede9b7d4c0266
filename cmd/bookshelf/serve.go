package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vvakame/bookshelf/internal/log"
	"github.com/vvakame/bookshelf/internal/server"
	"github.com/vvakame/bookshelf/internal/telemetry"
)

func newServeCmd(conf *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the GraphQL API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln, err := net.Listen("tcp", conf.GetString("addr"))
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), conf, ln)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":5000", "address to listen on")
	flags.Bool("introspection", true, "enable GraphQL introspection")
	flags.Bool("playground", true, "serve the GraphQL playground on /")
	flags.String("otlp-endpoint", "", "OTLP gRPC collector endpoint; tracing is off when empty")

	return cmd
}

// runServe serves the API on ln until ctx is done, then shuts down gracefully.
// ln is closed on return.
func runServe(ctx context.Context, conf *viper.Viper, ln net.Listener) error {
	defer ln.Close()

	logger := log.FromContext(ctx)
	if logger.GetSink() == nil {
		logger = log.New()
	}
	ctx = log.WithLogger(ctx, logger)

	shutdownTracing, err := telemetry.Setup(ctx, conf.GetString("otlp-endpoint"), "bookshelf")
	if err != nil {
		logger.Error(err, "failed to set up tracing")
		return err
	}
	defer func() {
		err := shutdownTracing(context.Background())
		if err != nil {
			logger.Error(err, "failed to shut down tracing")
		}
	}()

	es, err := newExecutableSchema(ctx, conf)
	if err != nil {
		logger.Error(err, "failed to build executable schema")
		return err
	}

	h, err := server.New(es,
		server.WithLogger(logger),
		server.WithIntrospection(conf.GetBool("introspection")),
		server.WithPlayground(conf.GetBool("playground")),
		server.WithTracer(telemetry.NewTracer(nil)),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	logger.Info(fmt.Sprintf("Access GraphQL endpoint at: http://%s/query", displayAddr(ln.Addr())))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func displayAddr(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok && tcp.IP.IsUnspecified() {
		return fmt.Sprintf("localhost:%d", tcp.Port)
	}
	return addr.String()
}
