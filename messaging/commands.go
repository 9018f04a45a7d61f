package messaging

import (
	"encoding/json"
	"log"

	"zeroedge/engine"
)

// Command is an inbound remote-control message from the plant broker.
// The set mirrors the local admin API's simulation controls so central
// tooling can drive a cell without reaching its HTTP surface.
type Command struct {
	Type      string `json:"type"`
	MachineID int64  `json:"machine_id,omitempty"`
	ToolID    int64  `json:"tool_id,omitempty"`
	Count     int    `json:"count,omitempty"`
}

// CommandListener subscribes to the cell's command topic and applies the
// received commands through the engine.
type CommandListener struct {
	client *Client
	eng    *engine.Engine
	topic  string
}

// NewCommandListener creates a command listener for the given topic.
func NewCommandListener(client *Client, eng *engine.Engine, topic string) *CommandListener {
	return &CommandListener{client: client, eng: eng, topic: topic}
}

// Start subscribes to the command topic. A failed subscribe is not fatal to
// the cell; the local admin API stays available.
func (l *CommandListener) Start() error {
	return l.client.Subscribe(l.topic, l.handle)
}

func (l *CommandListener) handle(payload []byte) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		log.Printf("command: bad payload: %v", err)
		return
	}

	switch cmd.Type {
	case "force_error":
		if _, err := l.eng.Scheduler().ForceError(cmd.MachineID); err != nil {
			log.Printf("command force_error machine %d: %v", cmd.MachineID, err)
		}
	case "expire_tool":
		if _, err := l.eng.Scheduler().ExpireTool(cmd.ToolID); err != nil {
			log.Printf("command expire_tool tool %d: %v", cmd.ToolID, err)
		}
	case "inject_quality_records":
		if _, err := l.eng.Scheduler().InjectQualityRecords(cmd.Count); err != nil {
			log.Printf("command inject_quality_records: %v", err)
		}
	default:
		log.Printf("command: unknown type %q", cmd.Type)
	}
}
