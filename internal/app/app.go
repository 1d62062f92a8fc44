// Package app wires the storefront server together and runs it.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/sajjplace/storefront/internal/domain/catalog"
	"github.com/sajjplace/storefront/internal/handler"
	"github.com/sajjplace/storefront/internal/notify"
	"github.com/sajjplace/storefront/internal/paystack"
	"github.com/sajjplace/storefront/internal/storage/jsonfile"
	"github.com/sajjplace/storefront/pkg/health"
	"github.com/sajjplace/storefront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("data_dir", cfg.DataDir))

	// Flat-file stores.
	orders, err := jsonfile.NewOrderStore(cfg.DataDir)
	if err != nil {
		return errors.Wrap(err, "open order store")
	}
	tickets, err := jsonfile.NewTicketStore(cfg.DataDir)
	if err != nil {
		return errors.Wrap(err, "open ticket store")
	}
	reviews, err := jsonfile.NewReviewStore(cfg.DataDir)
	if err != nil {
		return errors.Wrap(err, "open review store")
	}
	subscribers, err := jsonfile.NewSubscriberStore(cfg.DataDir)
	if err != nil {
		return errors.Wrap(err, "open subscriber store")
	}

	// Notification pipeline. Sinks without an endpoint are left out.
	var sinks []notify.Sink
	if cfg.Notify.EmailEndpoint != "" {
		sinks = append(sinks, notify.NewEmailSink(nil,
			cfg.Notify.EmailEndpoint, cfg.Notify.EmailAccessKey, cfg.Notify.EmailTo))
	}
	if cfg.Notify.SheetWebhook != "" {
		sinks = append(sinks, notify.NewSheetSink(nil, cfg.Notify.SheetWebhook))
	}
	queue := notify.NewQueue(lg.Named("notify"),
		notify.QueueOptions{Workers: cfg.Notify.Workers}, sinks...)
	notifier := notify.NewNotifier(queue)

	payments := paystack.NewClient(nil, "", cfg.PaystackSecretKey)

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("data-dir", 5*time.Second, health.DataDirCheck(cfg.DataDir))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// HTTP handlers.
	h := handler.New(
		handler.Config{
			AdminUser:  cfg.AdminUser,
			AdminPass:  cfg.AdminPass,
			UploadsDir: cfg.UploadsDir,
		},
		catalog.Default(),
		orders, tickets, reviews, subscribers,
		payments,
		notifier,
		nil,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	h.Register(mux)
	mux.Handle("GET /uploads/",
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("sajj-storefront", m),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone

	// Flush queued notifications before exiting.
	queue.Close()
	return nil
}
