package welcome

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/uibridge/internal/registry"
	"github.com/vk/uibridge/internal/ui"
)

func renderWith(t *testing.T, event *ui.CreateEvent) string {
	t.Helper()

	reg := registry.New()
	(&Module{}).Register(reg)
	factory, ok := reg.UI("welcome")
	require.True(t, ok)

	instance, err := factory.New(context.Background(), event)
	require.NoError(t, err)
	require.NoError(t, instance.Init(context.Background(), event))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, instance.Render(context.Background(), w, r))
	return w.Body.String()
}

func TestRenderDefaults(t *testing.T) {
	body := renderWith(t, &ui.CreateEvent{Name: "welcome", SessionID: "s-1", UIID: 1})
	require.Contains(t, body, "<title>uibridge</title>")
	require.Contains(t, body, "<h1>Welcome</h1>")
}

func TestRenderUsesTitleAndParams(t *testing.T) {
	body := renderWith(t, &ui.CreateEvent{
		Name:      "welcome",
		Title:     "Front Door",
		SessionID: "s-1",
		UIID:      1,
		Params:    &Params{Greeting: "Hi there", Footer: "v1.0"},
	})
	require.Contains(t, body, "<title>Front Door</title>")
	require.Contains(t, body, "<h1>Hi there</h1>")
	require.Contains(t, body, "<p>v1.0</p>")
}

func TestRenderEscapesParamValues(t *testing.T) {
	body := renderWith(t, &ui.CreateEvent{
		Name:      "welcome",
		SessionID: "s-1",
		UIID:      1,
		Params:    &Params{Greeting: "<script>alert(1)</script>"},
	})
	require.NotContains(t, body, "<script>")
	require.Contains(t, body, "&lt;script&gt;")
}

func TestFactoryProvidesParamsStruct(t *testing.T) {
	reg := registry.New()
	(&Module{}).Register(reg)
	factory, ok := reg.UI("welcome")
	require.True(t, ok)
	require.NotNil(t, factory.NewParams)
	require.IsType(t, &Params{}, factory.NewParams())
}
