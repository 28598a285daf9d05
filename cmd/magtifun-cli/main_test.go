package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingShutdown struct{}

func (failingShutdown) Shutdown(context.Context) error {
	return errors.New("export refused")
}

type cleanShutdown struct{}

func (cleanShutdown) Shutdown(context.Context) error {
	return nil
}

func TestFlush(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	out := &bytes.Buffer{}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, nil)))

	flush(cleanShutdown{})
	require.Empty(t, out.String())

	flush(failingShutdown{})
	require.Contains(t, out.String(), "failed to flush telemetry")
	require.Contains(t, out.String(), "export refused")
}
