package websocket

import (
	"context"
	"errors"
	"fmt"

	ws "github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Subscribe dials an agent's event stream and calls fn for each event
// until ctx is done or the agent goes away. A cancelled ctx returns nil.
func Subscribe(ctx context.Context, url string, fn func(Event)) error {
	conn, _, err := ws.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial agent: %w", err)
	}
	defer conn.CloseNow()

	for {
		var ev Event
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if ws.CloseStatus(err) == ws.StatusNormalClosure || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		fn(ev)
	}
}
