package engine

import (
	"time"

	"zeroedge/store"
)

// EventType identifies the kind of event emitted by the Engine.
type EventType int

const (
	// Digital-twin events
	EventMachineSnapshot EventType = iota + 1
	EventMachineStateChanged
	EventQualityRecordCreated
	EventToolExpired

	// Interlock events
	EventProductionStarted
	EventProductionStopped
)

// Event is the envelope emitted by the Engine's EventBus.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   interface{}
}

// MachineSnapshotEvent is the batched full-row snapshot published after any
// tick with changes.
type MachineSnapshotEvent struct {
	Machines []store.Machine `json:"machines"`
}

// MachineStateChangedEvent is emitted on a machine status transition.
type MachineStateChangedEvent struct {
	MachineID int64  `json:"machine_id"`
	Name      string `json:"name"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// QualityRecordCreatedEvent is emitted when the core raises a quality record.
type QualityRecordCreatedEvent struct {
	RecordID    int64  `json:"record_id"`
	MachineID   int64  `json:"machine_id"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// ToolExpiredEvent is emitted when a tool's life is zeroed.
type ToolExpiredEvent struct {
	ToolID int64  `json:"tool_id"`
	Name   string `json:"name"`
}

// ProductionStartedEvent is emitted when the interlock gate commits a start.
type ProductionStartedEvent struct {
	WorkOrderID int64  `json:"work_order_id"`
	MachineID   int64  `json:"machine_id"`
	OperatorID  int64  `json:"operator_id"`
	PartNumber  string `json:"part_number"`
	Quantity    int    `json:"quantity"`
}

// ProductionStoppedEvent is emitted when a work order is completed.
type ProductionStoppedEvent struct {
	WorkOrderID int64  `json:"work_order_id"`
	MachineID   int64  `json:"machine_id"`
	OperatorID  int64  `json:"operator_id"`
	PartNumber  string `json:"part_number"`
	Quantity    int    `json:"quantity"`
}
