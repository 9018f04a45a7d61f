package sim

import "zeroedge/store"

// EventEmitter is the interface the sim package uses to emit events.
type EventEmitter interface {
	EmitMachineStateChanged(machineID int64, name, oldStatus, newStatus string)
	EmitQualityRecordCreated(recordID, machineID int64, severity, description string)
	EmitMachineSnapshot(machines []store.Machine)
	EmitToolExpired(toolID int64, name string)
}
