// pattern: Imperative Shell

package touch

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Replay dials a bridge and sends events in order, pausing interval between
// them. It closes the socket normally once all events are written.
func Replay(ctx context.Context, url string, events []PointerEvent, interval time.Duration) error {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to touch bridge: %w", err)
	}
	defer func() { _ = conn.CloseNow() }()

	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		if err := wsjson.Write(ctx, conn, ev); err != nil {
			return fmt.Errorf("failed to send event %d: %w", i, err)
		}
		if interval <= 0 || i == len(events)-1 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	return conn.Close(websocket.StatusNormalClosure, "done")
}
