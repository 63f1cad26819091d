package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// RunWithGracefulShutdown starts the server and drains it on SIGINT/SIGTERM.
// cleanup, when set, releases shared resources (browser, db pool) before the
// listener stops accepting; timeout bounds the drain of in-flight requests.
func RunWithGracefulShutdown(server *http.Server, appName string, cleanup func(), timeout time.Duration) error {
	serverErrChan := make(chan error, 1)

	go func() {
		log.Printf("[INFO] %q listening on %s ...", appName, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		} else {
			serverErrChan <- nil
		}
	}()

	osSignalChan := make(chan os.Signal, 1)
	signal.Notify(osSignalChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-osSignalChan:
		log.Printf("[INFO] got signal [%s], shutting down %q ...", sig, appName)
	case err := <-serverErrChan:
		// Listener failed before any signal.
		return err
	}

	if cleanup != nil {
		cleanup()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] server shutdown failed: %v", err)
	}

	if err := <-serverErrChan; err != nil {
		return err
	}
	log.Printf("[INFO] %q shutdown complete", appName)
	return nil
}
