package engine

import "zeroedge/store"

// simEmitter adapts the engine's EventBus to the sim.EventEmitter interface.
type simEmitter struct {
	bus *EventBus
}

func (e *simEmitter) EmitMachineStateChanged(machineID int64, name, oldStatus, newStatus string) {
	e.bus.Emit(Event{Type: EventMachineStateChanged, Payload: MachineStateChangedEvent{
		MachineID: machineID, Name: name, OldStatus: oldStatus, NewStatus: newStatus,
	}})
}

func (e *simEmitter) EmitQualityRecordCreated(recordID, machineID int64, severity, description string) {
	e.bus.Emit(Event{Type: EventQualityRecordCreated, Payload: QualityRecordCreatedEvent{
		RecordID: recordID, MachineID: machineID, Severity: severity, Description: description,
	}})
}

func (e *simEmitter) EmitMachineSnapshot(machines []store.Machine) {
	e.bus.Emit(Event{Type: EventMachineSnapshot, Payload: MachineSnapshotEvent{Machines: machines}})
}

func (e *simEmitter) EmitToolExpired(toolID int64, name string) {
	e.bus.Emit(Event{Type: EventToolExpired, Payload: ToolExpiredEvent{ToolID: toolID, Name: name}})
}

// gateEmitter adapts the engine's EventBus to the interlock.EventEmitter interface.
type gateEmitter struct {
	bus *EventBus
}

func (e *gateEmitter) EmitProductionStarted(workOrderID, machineID, operatorID int64, partNumber string, quantity int) {
	e.bus.Emit(Event{Type: EventProductionStarted, Payload: ProductionStartedEvent{
		WorkOrderID: workOrderID, MachineID: machineID, OperatorID: operatorID,
		PartNumber: partNumber, Quantity: quantity,
	}})
}

func (e *gateEmitter) EmitProductionStopped(workOrderID, machineID, operatorID int64, partNumber string, quantity int) {
	e.bus.Emit(Event{Type: EventProductionStopped, Payload: ProductionStoppedEvent{
		WorkOrderID: workOrderID, MachineID: machineID, OperatorID: operatorID,
		PartNumber: partNumber, Quantity: quantity,
	}})
}
