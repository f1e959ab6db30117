package push

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/uibridge/internal/scope"
)

// fakeEmitter records emitted events for assertions.
type fakeEmitter struct {
	emits []emit
}

type emit struct {
	room    string
	event   string
	payload any
}

func (f *fakeEmitter) EmitTo(room string, event string, payload any) {
	f.emits = append(f.emits, emit{room: room, event: event, payload: payload})
}

func TestPublishRoutesToIdentifierRoom(t *testing.T) {
	broker := NewBroker()
	fake := &fakeEmitter{}
	broker.Attach(fake)

	id := scope.Identifier{SessionID: "s-1", UIID: 2}
	broker.Publish(context.Background(), id, "status", map[string]any{"visits": 3})

	require.Len(t, fake.emits, 1)
	require.Equal(t, "s-1/2", fake.emits[0].room)
	require.Equal(t, "status", fake.emits[0].event)
}

func TestPublishWithoutTransportIsDropped(t *testing.T) {
	broker := NewBroker()
	require.NotPanics(t, func() {
		broker.Publish(context.Background(), scope.Identifier{SessionID: "s-1", UIID: 1}, "status", nil)
	})
}

func TestPublishCurrentUsesContextIdentifier(t *testing.T) {
	broker := NewBroker()
	fake := &fakeEmitter{}
	broker.Attach(fake)

	id := scope.Identifier{SessionID: "s-9", UIID: 4}
	ctx := scope.WithIdentifier(context.Background(), id)

	require.True(t, broker.PublishCurrent(ctx, "tick", 1))
	require.Len(t, fake.emits, 1)
	require.Equal(t, "s-9/4", fake.emits[0].room)
}

func TestPublishCurrentOutsideScope(t *testing.T) {
	broker := NewBroker()
	fake := &fakeEmitter{}
	broker.Attach(fake)

	require.False(t, broker.PublishCurrent(context.Background(), "tick", 1))
	require.Empty(t, fake.emits)
}

func TestParseAttach(t *testing.T) {
	cases := []struct {
		name    string
		args    []any
		want    scope.Identifier
		wantErr string
	}{
		{
			name: "json numbers arrive as float64",
			args: []any{map[string]any{"session": "s-1", "ui": float64(2)}},
			want: scope.Identifier{SessionID: "s-1", UIID: 2},
		},
		{
			name: "int ui accepted",
			args: []any{map[string]any{"session": "s-1", "ui": 1}},
			want: scope.Identifier{SessionID: "s-1", UIID: 1},
		},
		{
			name:    "missing payload",
			args:    nil,
			wantErr: "attach payload missing",
		},
		{
			name:    "payload not an object",
			args:    []any{"s-1/1"},
			wantErr: "must be an object",
		},
		{
			name:    "missing session",
			args:    []any{map[string]any{"ui": float64(1)}},
			wantErr: "missing session",
		},
		{
			name:    "missing ui",
			args:    []any{map[string]any{"session": "s-1"}},
			wantErr: "missing ui",
		},
		{
			name:    "ui not a number",
			args:    []any{map[string]any{"session": "s-1", "ui": "one"}},
			wantErr: "must be a number",
		},
		{
			name:    "ui must be positive",
			args:    []any{map[string]any{"session": "s-1", "ui": float64(0)}},
			wantErr: "must be positive",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseAttach(tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
