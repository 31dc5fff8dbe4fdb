// Package server runs an http.Handler, typically a dispatcher.Dispatcher,
// with production timeouts and graceful shutdown.
//
// The server is built for errgroup-coordinated lifecycles:
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// Canceling the context stops accepting connections and waits up to the
// shutdown timeout for in-flight requests.
//
// TLS is enabled with WithTLS, or through Config.TLSCertFile and
// Config.TLSKeyFile.
//
// Defaults: 15s read and write timeouts, 60s idle timeout, 1MB header limit
// and a 30s shutdown timeout.
package server
