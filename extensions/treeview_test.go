package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lifetime "github.com/lifetime-fn/lifetime-go"
)

func TestTreeObserver_RendersHierarchy(t *testing.T) {
	obs := NewTreeObserver()

	app := lifetime.NewRoot(lifetime.WithName("app"), lifetime.WithObserver(obs))
	pool := lifetime.NewNested(app.Outer(), lifetime.WithName("pool"))
	lifetime.NewNested(pool.Outer(), lifetime.WithName("conn"))
	lifetime.NewNested(app.Outer(), lifetime.WithName("server"))

	out := obs.Render()
	assert.Contains(t, out, "app")
	assert.Contains(t, out, "pool")
	assert.Contains(t, out, "conn")
	assert.Contains(t, out, "server")
	assert.NotContains(t, out, "[terminated]")
}

func TestTreeObserver_MarksTerminated(t *testing.T) {
	obs := NewTreeObserver()

	app := lifetime.NewRoot(lifetime.WithName("app"), lifetime.WithObserver(obs))
	lifetime.NewNested(app.Outer(), lifetime.WithName("child"))

	require.NoError(t, app.Terminate())

	out := obs.Render()
	assert.Contains(t, out, "app [terminated]")
	assert.Contains(t, out, "child [terminated]")
}

func TestTreeObserver_MultipleRoots(t *testing.T) {
	obs := NewTreeObserver()

	lifetime.NewRoot(lifetime.WithName("first-root"), lifetime.WithObserver(obs))
	lifetime.NewRoot(lifetime.WithName("second-root"), lifetime.WithObserver(obs))

	out := obs.Render()
	assert.Contains(t, out, "first-root")
	assert.Contains(t, out, "second-root")
}

func TestTreeObserver_OrphanRendersAsRoot(t *testing.T) {
	obs := NewTreeObserver()

	parent := lifetime.NewRoot(lifetime.WithName("gone"), lifetime.WithObserver(obs))
	require.NoError(t, parent.Terminate())

	// Attachment failed, so the orphan shows up as its own root.
	lifetime.NewNested(parent.Outer(), lifetime.WithName("orphan"))

	out := obs.Render()
	assert.Contains(t, out, "orphan")
}
