package engine

import (
	"encoding/json"
	"log"
	"time"
)

// wireEventHandlers sets up the durable side of the event chain:
// QualityRecordCreated → outbox enqueue toward the plant QMS topic.
// The live side (SSE, direct broker publish of snapshots) subscribes from
// the www and messaging layers; a slow consumer there never blocks a tick.
func (e *Engine) wireEventHandlers() {
	e.Events.SubscribeTypes(func(evt Event) {
		rec := evt.Payload.(QualityRecordCreatedEvent)
		e.enqueueQualityEvent(rec)
	}, EventQualityRecordCreated)

	e.Events.SubscribeTypes(func(evt Event) {
		p := evt.Payload.(ProductionStartedEvent)
		e.debugFn("production started: wo=%d machine=%d operator=%d part=%s qty=%d",
			p.WorkOrderID, p.MachineID, p.OperatorID, p.PartNumber, p.Quantity)
	}, EventProductionStarted)

	e.Events.SubscribeTypes(func(evt Event) {
		p := evt.Payload.(ProductionStoppedEvent)
		e.debugFn("production stopped: wo=%d machine=%d operator=%d part=%s qty=%d",
			p.WorkOrderID, p.MachineID, p.OperatorID, p.PartNumber, p.Quantity)
	}, EventProductionStopped)
}

// qualityEventMessage is the outbound envelope for auto-raised quality
// records. It leaves the box through the outbox so broker downtime never
// loses a record.
type qualityEventMessage struct {
	Plant       string `json:"plant"`
	CellID      string `json:"cell_id"`
	RecordID    int64  `json:"record_id"`
	MachineID   int64  `json:"machine_id"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

func (e *Engine) enqueueQualityEvent(rec QualityRecordCreatedEvent) {
	msg := qualityEventMessage{
		Plant:       e.cfg.Plant,
		CellID:      e.cfg.CellID,
		RecordID:    rec.RecordID,
		MachineID:   rec.MachineID,
		Severity:    rec.Severity,
		Description: rec.Description,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	payload, _ := json.Marshal(msg)

	if _, err := e.db.EnqueueOutbox(e.cfg.Messaging.QualityTopic, payload, "quality_event"); err != nil {
		log.Printf("enqueue quality event %d: %v", rec.RecordID, err)
	}
}
