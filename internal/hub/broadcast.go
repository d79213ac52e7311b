package hub

import (
	"encoding/json"
	"log/slog"

	"github.com/inputkit/padbridge/internal/event"
)

// Broadcaster turns canonical gamepad events into hub broadcasts. Its
// HandleEvent method is registered as the monitor's consumer callback.
type Broadcaster struct {
	hub    *Hub
	lister Lister
	log    *slog.Logger
}

func NewBroadcaster(h *Hub, lister Lister, log *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    h,
		lister: lister,
		log:    log,
	}
}

// HandleEvent marshals one event and fans it out. It runs on the
// dispatch goroutine and must stay cheap; slow clients are handled by
// the hub, not here.
func (b *Broadcaster) HandleEvent(ev event.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		b.log.Error("marshal event", "kind", ev.EventKind(), "error", err)
		return
	}
	b.hub.Broadcast(data)
}

// SendInitialState replays a connection event for every connected
// gamepad into one client's queue, so a late-joining client sees the
// same picture as one that watched from the start.
func (b *Broadcaster) SendInitialState(c *Client) {
	for _, info := range b.lister.ListGamepads() {
		data, err := json.Marshal(event.NewConnection(info.ID, true, info.Name, info.VendorID, info.ProductID))
		if err != nil {
			b.log.Error("marshal initial state", "error", err)
			return
		}
		select {
		case c.send <- data:
		default:
		}
	}
}
