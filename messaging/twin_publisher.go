package messaging

import (
	"encoding/json"
	"log"
	"time"

	"zeroedge/engine"
	"zeroedge/store"
)

// TwinSnapshotMessage mirrors the SSE machine_update shape for broker
// consumers (central dashboards, historians).
type TwinSnapshotMessage struct {
	Type      string          `json:"type"`
	Plant     string          `json:"plant"`
	CellID    string          `json:"cell_id"`
	Machines  []store.Machine `json:"machines"`
	Timestamp string          `json:"timestamp"`
}

// TwinPublisher forwards machine snapshots to the plant broker.
// Snapshots are ephemeral, so publishing is fire-and-forget: a failed or
// disconnected broker drops the message and the next tick replaces it.
type TwinPublisher struct {
	client *Client
	topic  string
	plant  string
	cellID string
}

// NewTwinPublisher creates a twin snapshot publisher.
func NewTwinPublisher(client *Client, topic, plant, cellID string) *TwinPublisher {
	return &TwinPublisher{client: client, topic: topic, plant: plant, cellID: cellID}
}

// Attach subscribes the publisher to the engine's snapshot events.
func (p *TwinPublisher) Attach(eng *engine.Engine) {
	eng.Events.SubscribeTypes(func(evt engine.Event) {
		snap := evt.Payload.(engine.MachineSnapshotEvent)
		p.publish(snap.Machines)
	}, engine.EventMachineSnapshot)
}

func (p *TwinPublisher) publish(machines []store.Machine) {
	if !p.client.IsConnected() {
		return
	}
	msg := TwinSnapshotMessage{
		Type:      "machine_update",
		Plant:     p.plant,
		CellID:    p.cellID,
		Machines:  machines,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := p.client.Publish(p.topic, payload); err != nil {
		log.Printf("publish twin snapshot: %v", err)
	}
}
