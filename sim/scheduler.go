package sim

import (
	"fmt"
	"log"
	"sync"
	"time"

	"zeroedge/config"
	"zeroedge/store"
)

// Scheduler drives the digital twin: on a fixed period it advances every
// machine's state, refreshes predictions, persists changed rows, raises
// quality records on fault entry, and publishes a batched snapshot.
//
// All tick work runs inline on the loop goroutine, so ticks never overlap.
// Manual controls may run concurrently with a tick; row-level last-write-wins
// is accepted, matching the rest of the system.
type Scheduler struct {
	db        *store.DB
	cfg       config.SimulationConfig
	rng       *Source
	pred      Predictor
	emitter   EventEmitter
	authorize AuthorizeFunc

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler. authorize gates simulated auto-starts
// and may be nil, in which case idle machines never start on their own.
func NewScheduler(db *store.DB, cfg config.SimulationConfig, rng *Source, pred Predictor, emitter EventEmitter, authorize AuthorizeFunc) *Scheduler {
	return &Scheduler{
		db:        db,
		cfg:       cfg,
		rng:       rng,
		pred:      pred,
		emitter:   emitter,
		authorize: authorize,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the tick loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.tickLoop()
}

// Stop stops the tick loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
}

func (s *Scheduler) tickLoop() {
	defer s.wg.Done()

	interval := s.cfg.TickInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick processes one pass over all machines and returns how many rows
// changed. A failure on one machine is logged and skipped; the rest of the
// tick still runs.
func (s *Scheduler) Tick() int {
	machines, err := s.db.ListMachines()
	if err != nil {
		log.Printf("tick: list machines: %v", err)
		return 0
	}

	changed := 0
	for _, m := range machines {
		didChange, err := s.processMachine(m)
		if err != nil {
			log.Printf("tick: machine %s: %v", m.Name, err)
			continue
		}
		if didChange {
			changed++
		}
	}

	if changed > 0 {
		s.publishSnapshot()
	}
	return changed
}

func (s *Scheduler) processMachine(m store.Machine) (bool, error) {
	next, events := Advance(m, s.rng, s.cfg.MaintenanceThreshold, s.authorize)

	est := s.pred.Predict(next)
	next.PredictedRUL = est.RemainingUsefulLife
	next.FailureProbability = est.FailureProbability

	if !twinChanged(m, next) {
		return false, nil
	}

	if err := s.db.UpdateMachineTwin(&next); err != nil {
		return false, fmt.Errorf("update twin: %w", err)
	}

	for _, evt := range events {
		switch evt.Kind {
		case TransitionFault:
			s.recordFault(next.ID, next.Name, evt.Health, "simulation")
		case TransitionStatusChanged:
			s.emitter.EmitMachineStateChanged(next.ID, next.Name, evt.OldStatus, evt.NewStatus)
		}
	}

	return true, nil
}

// twinChanged reports whether any simulation-owned field differs.
func twinChanged(old, next store.Machine) bool {
	return old.Status != next.Status ||
		old.Health != next.Health ||
		old.OEE != next.OEE ||
		old.PredictedRUL != next.PredictedRUL ||
		old.FailureProbability != next.FailureProbability
}

// recordFault creates the quality record for a fault entry. Both organic
// transitions and ForceError route through here so forced faults carry the
// same side effects.
func (s *Scheduler) recordFault(machineID int64, name string, health float64, source string) {
	desc := fmt.Sprintf("Machine %s entered fault state at health %.1f%%", name, health)
	id, err := s.db.InsertQualityRecord(&machineID, store.SeverityMajor, desc, source)
	if err != nil {
		log.Printf("insert quality record for %s: %v", name, err)
		return
	}
	s.emitter.EmitQualityRecordCreated(id, machineID, store.SeverityMajor, desc)
}

// publishSnapshot emits one batched snapshot of all machine rows. Full rows,
// not a diff: clients replace their view wholesale.
func (s *Scheduler) publishSnapshot() {
	machines, err := s.db.ListMachines()
	if err != nil {
		log.Printf("snapshot: list machines: %v", err)
		return
	}
	s.emitter.EmitMachineSnapshot(machines)
}

// --- Manual simulation controls ---

// ForceError pushes a machine into Error through the same side-effect path
// as an organic fault. Forcing a machine already in Error is a no-op.
func (s *Scheduler) ForceError(machineID int64) (*store.Machine, error) {
	m, err := s.db.GetMachine(machineID)
	if err != nil {
		return nil, err
	}
	if m.Status == store.MachineError {
		return m, nil
	}

	oldStatus := m.Status
	next := *m
	next.Status = store.MachineError

	est := s.pred.Predict(next)
	next.PredictedRUL = est.RemainingUsefulLife
	next.FailureProbability = est.FailureProbability

	if err := s.db.UpdateMachineTwin(&next); err != nil {
		return nil, err
	}

	s.emitter.EmitMachineStateChanged(next.ID, next.Name, oldStatus, next.Status)
	s.recordFault(next.ID, next.Name, m.Health, "manual")
	s.publishSnapshot()
	return &next, nil
}

// ExpireTool zeroes a tool's remaining life, which blocks any production
// that depends on it.
func (s *Scheduler) ExpireTool(toolID int64) (*store.Tool, error) {
	t, err := s.db.GetTool(toolID)
	if err != nil {
		return nil, err
	}
	if err := s.db.UpdateToolLife(t.ID, 0, store.ToolExpired); err != nil {
		return nil, err
	}
	t.LifePct = 0
	t.Status = store.ToolExpired
	s.emitter.EmitToolExpired(t.ID, t.Name)
	return t, nil
}

// InjectQualityRecords creates n synthetic quality records spread across
// machines, for demos and load tests.
func (s *Scheduler) InjectQualityRecords(n int) (int, error) {
	machines, err := s.db.ListMachines()
	if err != nil {
		return 0, err
	}

	severities := []string{store.SeverityMinor, store.SeverityMajor, store.SeverityCritical}
	created := 0
	for i := 0; i < n; i++ {
		var machineID *int64
		if m, ok := Pick(s.rng, machines); ok {
			machineID = &m.ID
		}
		severity, _ := Pick(s.rng, severities)
		desc := fmt.Sprintf("Synthetic quality record %d/%d", i+1, n)
		id, err := s.db.InsertQualityRecord(machineID, severity, desc, "manual")
		if err != nil {
			return created, err
		}
		created++
		if machineID != nil {
			s.emitter.EmitQualityRecordCreated(id, *machineID, severity, desc)
		}
	}
	return created, nil
}
