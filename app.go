package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	labkitlog "gitlab.com/gitlab-org/labkit/log"

	"gitlab.com/htmlpages/htmlpages/internal/config"
	"gitlab.com/htmlpages/htmlpages/internal/headers"
	"gitlab.com/htmlpages/htmlpages/internal/healthcheck"
	"gitlab.com/htmlpages/htmlpages/internal/logging"
	"gitlab.com/htmlpages/htmlpages/internal/rejectmethods"
	"gitlab.com/htmlpages/htmlpages/internal/serving"
	"gitlab.com/htmlpages/htmlpages/metrics"
)

type theApp struct {
	config *config.Config
}

// buildHandler assembles the middleware chain around the serving handler:
// access logging and metrics outermost, then custom and policy headers,
// status check, method filter, and the serving handler itself.
func (a *theApp) buildHandler() (http.Handler, error) {
	customHeaders, err := headers.ParseHeaderString(a.config.General.CustomHeaders)
	if err != nil {
		return nil, err
	}

	policy := serving.ByMode(a.config.General.Mode)

	var handler http.Handler = serving.NewHandler(a.config.General.RootDir, policy)
	handler = rejectmethods.NewMiddleware(handler)
	handler = healthcheck.NewMiddleware(handler, a.config.General.StatusPath)
	handler = headers.NewPolicyMiddleware(handler, policy.ExtraHeaders)
	handler = headers.NewMiddleware(handler, customHeaders)
	handler = withMetrics(handler)

	return logging.AccessLogger(handler, a.config.Log.Format, a.extraLogFields)
}

func (a *theApp) extraLogFields(r *http.Request) labkitlog.Fields {
	return labkitlog.Fields{
		"host":         r.Host,
		"serving_mode": a.config.General.Mode,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
// gracefully. In-flight requests are allowed to finish naturally, no drain
// deadline is imposed.
func (a *theApp) Run(ctx context.Context) error {
	handler, err := a.buildHandler()
	if err != nil {
		return err
	}

	l, err := a.listen(a.config.Addr())
	if err != nil {
		return err
	}

	if addr := a.config.General.MetricsAddress; addr != "" {
		ml, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		defer ml.Close()

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go http.Serve(ml, mux)

		log.WithField("listener", addr).Info("Set up metrics listener")
	}

	server := &http.Server{Handler: handler}

	shutdownCh := make(chan error, 1)
	go func() {
		if err := server.Serve(l); err != nil && err != http.ErrServerClosed {
			shutdownCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
		return server.Shutdown(context.Background())
	case err := <-shutdownCh:
		return err
	}
}

func runApp(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := theApp{config: cfg}

	return a.Run(ctx)
}

// metricsResponseWriter remembers the status code written to it so the
// request counter can be labelled after the handler returns.
type metricsResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *metricsResponseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}

	w.ResponseWriter.WriteHeader(status)
}

func (w *metricsResponseWriter) Write(data []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(data)
}

func withMetrics(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.SessionsActive.Inc()
		defer metrics.SessionsActive.Dec()

		mw := &metricsResponseWriter{ResponseWriter: w}
		handler.ServeHTTP(mw, r)

		metrics.ProcessedRequests.WithLabelValues(strconv.Itoa(mw.status), r.Method).Inc()
	})
}
