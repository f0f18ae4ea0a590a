package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"cefetid-backend/lib/restyutil"
	"cefetid-backend/lib/scrapers/cefetaluno"
	"cefetid-backend/lib/serviceutil"
	"cefetid-backend/lib/telemetry"

	"github.com/lmittmann/tint"
)

func initSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func InitTelemetry(ctx context.Context, verbose bool) {
	initSlog(verbose)

	t, err := telemetry.SetupFromEnv(ctx, "server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		t.Shutdown(context.Background())
	}()

	if !verbose {
		return
	}
	slog.DebugContext(ctx, "verbose logging enabled")
	cefetaluno.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/cefetaluno"),
	)
}
