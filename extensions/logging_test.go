package extensions

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lifetime "github.com/lifetime-fn/lifetime-go"
)

func newCapturedObserver() (*LoggingObserver, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewLoggingObserver(handler), &buf
}

func TestLoggingObserver_LifecycleEvents(t *testing.T) {
	obs, buf := newCapturedObserver()

	app := lifetime.NewRoot(lifetime.WithName("app"), lifetime.WithObserver(obs))
	lifetime.NewNested(app.Outer(), lifetime.WithName("child"))

	require.NoError(t, app.Terminate())

	out := buf.String()
	assert.Contains(t, out, "lifetime created")
	assert.Contains(t, out, "lifetime attached")
	assert.Contains(t, out, "lifetime terminated")
	assert.Contains(t, out, "lifetime=app")
	assert.Contains(t, out, "child=child")
	assert.Contains(t, out, "lived=")
}

func TestLoggingObserver_Discard(t *testing.T) {
	obs, buf := newCapturedObserver()

	def := lifetime.NewRoot(lifetime.WithName("done"), lifetime.WithObserver(obs))
	require.NoError(t, def.Terminate())

	def.OnTermination(func() error { return nil })

	assert.Contains(t, buf.String(), "registration discarded")
	assert.Contains(t, buf.String(), "reason=terminated")
}

func TestLoggingObserver_ActionErrorStillSurfaces(t *testing.T) {
	obs, buf := newCapturedObserver()

	def := lifetime.NewRoot(lifetime.WithName("fragile"), lifetime.WithObserver(obs))
	def.OnTermination(func() error {
		return errors.New("cleanup broke")
	})

	err := def.Terminate()
	require.Error(t, err)
	assert.Contains(t, buf.String(), "termination action failed")
	assert.Contains(t, buf.String(), "cleanup broke")
}
