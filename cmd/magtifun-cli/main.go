package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ABGEO/magtifun.abgeo.dev/cmd/magtifun-cli/commands"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/serviceutil"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/telemetry"
)

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// flush exports whatever telemetry is still buffered, a failure is only logged
// since the command already ran.
func flush(t shutdowner) {
	err := t.Shutdown(context.Background())
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
}

func main() {
	ctx := serviceutil.SignalContext()

	t, err := telemetry.SetupFromEnv(ctx, "magtifun-cli")
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to setup telemetry", "err", err)
	}

	code := commands.ExecuteContext(ctx)
	if err == nil {
		flush(t)
	}
	os.Exit(code)
}
