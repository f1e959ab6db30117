package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeDescriptor drops descriptor source into a fresh temp dir and returns
// the file path.
func writeDescriptor(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoadFullDescriptor(t *testing.T) {
	path := writeDescriptor(t, "deploy.hcl", `
server {
  listen_addr    = ":9090"
  session_cookie = "MYAPP_SESSION"
  session_idle   = "15m"
  push_path      = "/push/"
}

ui "welcome" {
  path  = "/"
  title = "Welcome"

  params {
    greeting = "Hello there"
  }
}

ui "status" {
  path = "/status"
  push = true
}
`)

	model, converter, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, converter)

	require.Equal(t, ":9090", model.Server.ListenAddr)
	require.Equal(t, "MYAPP_SESSION", model.Server.SessionCookie)
	require.Equal(t, 15*time.Minute, model.Server.SessionIdle)
	require.Equal(t, "/push/", model.Server.PushPath)

	require.Len(t, model.UIs, 2)

	welcome := model.UIs["welcome"]
	require.NotNil(t, welcome)
	require.Equal(t, "/", welcome.Path)
	require.Equal(t, "Welcome", welcome.Title)
	require.False(t, welcome.Push)
	require.Contains(t, welcome.Params, "greeting")

	status := model.UIs["status"]
	require.NotNil(t, status)
	require.Equal(t, "/status", status.Path)
	require.True(t, status.Push)
	require.Empty(t, status.Params)
}

func TestLoadDefaultsWithoutServerBlock(t *testing.T) {
	path := writeDescriptor(t, "deploy.hcl", `
ui "welcome" {
  path = "/"
}
`)

	model, _, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, ":8080", model.Server.ListenAddr)
	require.Equal(t, "UIBRIDGE_SESSION", model.Server.SessionCookie)
	require.Equal(t, 30*time.Minute, model.Server.SessionIdle)
	require.Equal(t, "/socket.io/", model.Server.PushPath)
}

func TestLoadMergesDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
ui "welcome" { path = "/" }
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`
ui "status" { path = "/status" }
`), 0o644))

	model, _, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.UIs, 2)
}

func TestLoadMissingPathIsNotAnError(t *testing.T) {
	model, _, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, model.UIs)
}

func TestLoadDuplicateUIName(t *testing.T) {
	path := writeDescriptor(t, "deploy.hcl", `
ui "welcome" { path = "/" }
ui "welcome" { path = "/again" }
`)

	_, _, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate ui block "welcome"`)
}

func TestLoadDuplicateServerBlock(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
server { listen_addr = ":1111" }
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`
server { listen_addr = ":2222" }
`), 0o644))

	_, _, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate server block")
}

func TestLoadInvalidSessionIdle(t *testing.T) {
	for _, idle := range []string{"soon", "-5m", "0s"} {
		path := writeDescriptor(t, "deploy.hcl", `
server { session_idle = "`+idle+`" }
`)
		_, _, err := NewLoader().Load(context.Background(), path)
		require.Error(t, err, "session_idle %q should be rejected", idle)
	}
}

func TestLoadUIPathMustBeAbsolute(t *testing.T) {
	path := writeDescriptor(t, "deploy.hcl", `
ui "welcome" { path = "welcome" }
`)

	_, _, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must start with '/'")
}

func TestLoadPushPathMustBeAbsolute(t *testing.T) {
	path := writeDescriptor(t, "deploy.hcl", `
server { push_path = "push" }
`)

	_, _, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "push_path")
}
