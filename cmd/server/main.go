package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/lumatask/core/api/handler"
	"github.com/lumatask/core/domain"
	"github.com/lumatask/core/internal/config"
	"github.com/lumatask/core/internal/notify"
	"github.com/lumatask/core/internal/router"
	"github.com/lumatask/core/internal/services/lifecycle"
	"github.com/lumatask/core/pkg/httpcontext"
	"github.com/lumatask/core/pkg/logger"
	"github.com/lumatask/core/usecase/reduce"
	"github.com/lumatask/core/usecase/selector"
	"github.com/lumatask/core/usecase/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	bus := notify.NewBus()
	notices := notify.NewRing(cfg.Notices.RingSize)
	unsubscribe := bus.Subscribe(notices.Add)
	defer unsubscribe()

	bus.Subscribe(func(n domain.Notice) {
		zapLogger.Info("notice",
			zap.String("severity", string(n.Severity)),
			zap.String("message", n.Message))
	})

	reducer := reduce.New(zapLogger)
	st := store.New(reducer, bus, zapLogger)
	manager.Register("store", func(ctx context.Context) error {
		st.Close()
		return nil
	})

	views := selector.NewViews(selector.WithUpcomingWindow(cfg.Views.UpcomingWindowDays))

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		State:  apiHandler.NewStateHandler(st, views, notices, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(st, ctxAdapter, zapLogger),
	}

	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
