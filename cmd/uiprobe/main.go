// uiprobe attaches to a running uibridged push channel and waits for a
// server-side event. It is an operational smoke test: if the probe gets its
// "attached" acknowledgement (and, optionally, a first event), the push
// pipeline works end to end.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	value any
	err   error
}

func main() {
	urlFlag := flag.String("url", "http://localhost:8080/socket.io", "Push endpoint URL (scheme://host:port/path).")
	sessionFlag := flag.String("session", "", "Session ID to attach to (from the session cookie).")
	uiFlag := flag.Int("ui", 1, "UI number to attach to.")
	eventFlag := flag.String("event", "", "Optionally wait for this event after attaching.")
	timeoutFlag := flag.Duration("timeout", 10*time.Second, "Give up after this long.")
	flag.Parse()

	if *sessionFlag == "" {
		fmt.Fprintln(os.Stderr, "uiprobe: -session is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := probe(*urlFlag, *sessionFlag, *uiFlag, *eventFlag, *timeoutFlag); err != nil {
		fmt.Fprintln(os.Stderr, "uiprobe:", err)
		os.Exit(1)
	}
}

// probe connects, attaches, and waits for the requested event.
func probe(rawURL, sessionID string, uiID int, event string, timeout time.Duration) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	opCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan opResult, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)
	defer io.Disconnect()

	io.On(types.EventName("connect"), func(...any) {
		io.Emit("attach", map[string]any{"session": sessionID, "ui": uiID})
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		done <- opResult{err: errs[0].(error)}
	})

	io.On(types.EventName("attach_error"), func(args ...any) {
		done <- opResult{err: fmt.Errorf("attach rejected: %v", args)}
	})

	io.On(types.EventName("attached"), func(args ...any) {
		var id any
		if len(args) > 0 {
			id = args[0]
		}
		fmt.Printf("attached: %v\n", id)
		if event == "" {
			done <- opResult{value: id}
		}
	})

	if event != "" {
		io.On(types.EventName(event), func(args ...any) {
			var payload any
			if len(args) > 0 {
				payload = args[0]
			}
			done <- opResult{value: payload}
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		return fmt.Errorf("timed out after %s waiting for push channel", timeout)
	case result := <-done:
		if result.err != nil {
			return result.err
		}
		out, err := json.Marshal(result.value)
		if err != nil {
			return fmt.Errorf("failed to render result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}
}
