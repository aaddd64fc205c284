package framework

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	httpListenerTimeout = time.Second * 10
	readinessTimeout    = time.Second
)

// StartServer starts an HTTP server on the specified port in the background, and does not
// return until the server is accepting requests. HEAD requests to any path are answered with
// a 200 status without reaching the handler; that is how readiness is detected.
func StartServer(port int, handler http.Handler, logger Logger) (*http.Server, error) {
	if logger == nil {
		logger = NullLogger()
	}
	server := &http.Server{
		Addr: fmt.Sprintf(":%d", port),
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusOK)
				return
			}
			handler.ServeHTTP(w, r)
		}),
	}
	listenErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("Server on %s stopped: %s", server.Addr, err)
			listenErr <- err
		}
	}()

	probeClient := &http.Client{Timeout: readinessTimeout}
	probeURL := fmt.Sprintf("http://localhost:%d", port)
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case err := <-listenErr:
			return nil, fmt.Errorf("could not listen on %s: %w", server.Addr, err)
		case <-deadline.C:
			_ = server.Close()
			return nil, fmt.Errorf("could not detect own listener at %s", server.Addr)
		case <-ticker.C:
			// Something else may own the port; a listen error must win over a probe that it answers.
			select {
			case err := <-listenErr:
				return nil, fmt.Errorf("could not listen on %s: %w", server.Addr, err)
			default:
			}
			resp, err := probeClient.Head(probeURL)
			if err == nil {
				_ = resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					logger.Printf("Server is listening on %s", server.Addr)
					return server, nil
				}
			}
		}
	}
}
