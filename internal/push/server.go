package push

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/vk/uibridge/internal/ctxlog"
	"github.com/vk/uibridge/internal/scope"
	"github.com/zishang520/socket.io/v2/socket"
)

// SessionChecker reports whether a session ID belongs to a live session.
// Attach requests for unknown sessions are rejected.
type SessionChecker func(sessionID string) bool

// Server is the socket.io transport behind the Broker. Clients connect,
// emit an "attach" event carrying their session ID and UI number, and from
// then on receive everything published to that identifier's room.
type Server struct {
	io *socket.Server
}

// NewServer creates the socket.io push server mounted at the given path
// prefix. check validates attach requests against the live session set.
func NewServer(ctx context.Context, path string, check SessionChecker) *Server {
	logger := ctxlog.FromContext(ctx)

	opts := socket.DefaultServerOptions()
	opts.SetPath(strings.TrimSuffix(path, "/"))
	io := socket.NewServer(nil, opts)

	io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		logger.Debug("Push client connected.", "sid", client.Id())

		client.On("attach", func(args ...any) {
			id, err := parseAttach(args)
			if err != nil {
				logger.Warn("Rejecting malformed push attach.", "sid", client.Id(), "error", err)
				client.Emit("attach_error", err.Error())
				return
			}
			if !check(id.SessionID) {
				logger.Warn("Rejecting push attach for unknown session.", "sid", client.Id(), "session", id.SessionID)
				client.Emit("attach_error", "unknown session")
				return
			}
			client.Join(socket.Room(id.String()))
			logger.Debug("Push client attached.", "sid", client.Id(), "identifier", id.String())
			client.Emit("attached", id.String())
		})

		client.On("disconnect", func(...any) {
			logger.Debug("Push client disconnected.", "sid", client.Id())
		})
	})

	return &Server{io: io}
}

// EmitTo implements the Broker's Emitter over socket.io rooms.
func (s *Server) EmitTo(room string, event string, payload any) {
	s.io.To(socket.Room(room)).Emit(event, payload)
}

// Handler returns the http.Handler to mount at the descriptor's push path.
func (s *Server) Handler() http.Handler {
	return s.io.ServeHandler(nil)
}

// Close shuts the socket.io server down.
func (s *Server) Close() {
	s.io.Close(nil)
}

// parseAttach extracts the scope identifier from an "attach" payload of the
// form {"session": "...", "ui": 1}.
func parseAttach(args []any) (scope.Identifier, error) {
	if len(args) == 0 {
		return scope.Identifier{}, fmt.Errorf("attach payload missing")
	}
	data, ok := args[0].(map[string]any)
	if !ok {
		return scope.Identifier{}, fmt.Errorf("attach payload must be an object, got %T", args[0])
	}

	sessionID, ok := data["session"].(string)
	if !ok || sessionID == "" {
		return scope.Identifier{}, fmt.Errorf("attach payload missing session")
	}

	uiID := 0
	switch v := data["ui"].(type) {
	case float64:
		uiID = int(v)
	case int:
		uiID = v
	case nil:
		return scope.Identifier{}, fmt.Errorf("attach payload missing ui")
	default:
		return scope.Identifier{}, fmt.Errorf("attach payload ui must be a number, got %T", v)
	}
	if uiID <= 0 {
		return scope.Identifier{}, fmt.Errorf("attach payload ui must be positive, got %d", uiID)
	}

	return scope.Identifier{SessionID: sessionID, UIID: uiID}, nil
}
