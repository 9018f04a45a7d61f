package sim

import (
	"path/filepath"
	"strings"
	"testing"

	"zeroedge/config"
	"zeroedge/store"
)

type recordingEmitter struct {
	stateChanges   []string
	qualityRecords []int64
	snapshots      int
	toolsExpired   []int64
}

func (e *recordingEmitter) EmitMachineStateChanged(machineID int64, name, oldStatus, newStatus string) {
	e.stateChanges = append(e.stateChanges, oldStatus+"->"+newStatus)
}

func (e *recordingEmitter) EmitQualityRecordCreated(recordID, machineID int64, severity, description string) {
	e.qualityRecords = append(e.qualityRecords, recordID)
}

func (e *recordingEmitter) EmitMachineSnapshot(machines []store.Machine) {
	e.snapshots++
}

func (e *recordingEmitter) EmitToolExpired(toolID int64, name string) {
	e.toolsExpired = append(e.toolsExpired, toolID)
}

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testScheduler(t *testing.T, db *store.DB, seed int64, authorize AuthorizeFunc) (*Scheduler, *recordingEmitter, *Source) {
	t.Helper()
	cfg := config.Defaults().Simulation
	rng := NewSource(seed)
	emitter := &recordingEmitter{}
	s := NewScheduler(db, cfg, rng, NewHeuristicPredictor(rng, cfg.LowOEEThreshold), emitter, authorize)
	return s, emitter, rng
}

func TestTickMaintenanceBelowThreshold(t *testing.T) {
	db := testDB(t)
	id, err := db.CreateMachine("CNC-01", store.MachineRunning, 15, 80, 1, nil)
	if err != nil {
		t.Fatalf("create machine: %v", err)
	}

	s, emitter, _ := testScheduler(t, db, 1, nil)

	if changed := s.Tick(); changed != 1 {
		t.Fatalf("Tick changed %d rows, want 1", changed)
	}

	m, err := db.GetMachine(id)
	if err != nil {
		t.Fatalf("get machine: %v", err)
	}
	if m.Status != store.MachineMaintenance {
		t.Fatalf("status = %s, want Maintenance", m.Status)
	}

	// Maintenance is preventive, not a fault: no quality record.
	n, err := db.CountQualityRecordsForMachine(id)
	if err != nil {
		t.Fatalf("count quality records: %v", err)
	}
	if n != 0 {
		t.Fatalf("quality records = %d, want 0", n)
	}

	if emitter.snapshots != 1 {
		t.Fatalf("snapshots = %d, want 1", emitter.snapshots)
	}
}

func TestTickFaultCreatesExactlyOneQualityRecord(t *testing.T) {
	db := testDB(t)
	id, err := db.CreateMachine("CNC-01", store.MachineRunning, 80, 85, 1, nil)
	if err != nil {
		t.Fatalf("create machine: %v", err)
	}

	seed := findSeed(t, func(s *Source) bool { return s.Chance(errorChance) })
	s, emitter, _ := testScheduler(t, db, seed, nil)

	if changed := s.Tick(); changed != 1 {
		t.Fatalf("Tick changed %d rows, want 1", changed)
	}

	m, err := db.GetMachine(id)
	if err != nil {
		t.Fatalf("get machine: %v", err)
	}
	if m.Status != store.MachineError {
		t.Fatalf("status = %s, want Error", m.Status)
	}
	if m.PredictedRUL != 0 || m.FailureProbability != 100 {
		t.Fatalf("predictions = %v/%v after fault, want 0/100", m.PredictedRUL, m.FailureProbability)
	}

	recs, err := db.ListQualityRecords(10)
	if err != nil {
		t.Fatalf("list quality records: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("quality records = %d, want exactly 1", len(recs))
	}
	if recs[0].Severity != store.SeverityMajor {
		t.Fatalf("severity = %s, want Major", recs[0].Severity)
	}
	if !strings.Contains(recs[0].Description, "80.0") {
		t.Fatalf("description %q does not carry health at fault", recs[0].Description)
	}
	if len(emitter.qualityRecords) != 1 {
		t.Fatalf("quality record events = %d, want 1", len(emitter.qualityRecords))
	}

	// The machine stays in Error and its row is already settled: a second
	// tick writes nothing and raises nothing.
	if changed := s.Tick(); changed != 0 {
		t.Fatalf("second Tick changed %d rows, want 0", changed)
	}
	if n, _ := db.CountQualityRecordsForMachine(id); n != 1 {
		t.Fatalf("quality records after second tick = %d, want 1", n)
	}
	if emitter.snapshots != 1 {
		t.Fatalf("snapshots = %d, want 1 (no snapshot on changeless tick)", emitter.snapshots)
	}
}

func TestTickIdleAutoStart(t *testing.T) {
	db := testDB(t)
	id, err := db.CreateMachine("CNC-02", store.MachineIdle, 90, 90, 1, nil)
	if err != nil {
		t.Fatalf("create machine: %v", err)
	}

	seed := findSeed(t, func(s *Source) bool { return s.Chance(autoStartChance) })
	s, emitter, _ := testScheduler(t, db, seed, func(store.Machine) bool { return true })

	if changed := s.Tick(); changed != 1 {
		t.Fatalf("Tick changed %d rows, want 1", changed)
	}

	m, _ := db.GetMachine(id)
	if m.Status != store.MachineRunning {
		t.Fatalf("status = %s, want Running", m.Status)
	}
	if len(emitter.stateChanges) != 1 || emitter.stateChanges[0] != "Idle->Running" {
		t.Fatalf("state changes = %v, want [Idle->Running]", emitter.stateChanges)
	}
}

func TestTickIdleAutoStartRefused(t *testing.T) {
	db := testDB(t)
	id, err := db.CreateMachine("CNC-02", store.MachineIdle, 90, 90, 1, nil)
	if err != nil {
		t.Fatalf("create machine: %v", err)
	}

	seed := findSeed(t, func(s *Source) bool { return s.Chance(autoStartChance) })
	s, _, _ := testScheduler(t, db, seed, func(store.Machine) bool { return false })

	s.Tick()

	m, _ := db.GetMachine(id)
	if m.Status != store.MachineIdle {
		t.Fatalf("status = %s, want Idle (authorize refused)", m.Status)
	}
}

func TestTickProcessesAllMachines(t *testing.T) {
	db := testDB(t)
	if _, err := db.CreateMachine("CNC-01", store.MachineRunning, 15, 80, 1, nil); err != nil {
		t.Fatalf("create machine: %v", err)
	}
	if _, err := db.CreateMachine("CNC-02", store.MachineRunning, 10, 80, 1, nil); err != nil {
		t.Fatalf("create machine: %v", err)
	}

	s, _, _ := testScheduler(t, db, 1, nil)

	// Both machines are below the maintenance threshold; both must land in
	// Maintenance in the same tick even though they are processed serially.
	if changed := s.Tick(); changed != 2 {
		t.Fatalf("Tick changed %d rows, want 2", changed)
	}
	machines, _ := db.ListMachines()
	for _, m := range machines {
		if m.Status != store.MachineMaintenance {
			t.Fatalf("machine %s status = %s, want Maintenance", m.Name, m.Status)
		}
	}
}

func TestForceError(t *testing.T) {
	db := testDB(t)
	id, err := db.CreateMachine("PRESS-01", store.MachineRunning, 62, 75, 1, nil)
	if err != nil {
		t.Fatalf("create machine: %v", err)
	}

	s, emitter, _ := testScheduler(t, db, 1, nil)

	m, err := s.ForceError(id)
	if err != nil {
		t.Fatalf("ForceError: %v", err)
	}
	if m.Status != store.MachineError {
		t.Fatalf("status = %s, want Error", m.Status)
	}
	if m.PredictedRUL != 0 || m.FailureProbability != 100 {
		t.Fatalf("predictions = %v/%v, want 0/100", m.PredictedRUL, m.FailureProbability)
	}

	recs, _ := db.ListQualityRecords(10)
	if len(recs) != 1 {
		t.Fatalf("quality records = %d, want 1", len(recs))
	}
	if recs[0].Source != "manual" {
		t.Fatalf("source = %s, want manual", recs[0].Source)
	}
	if !strings.Contains(recs[0].Description, "62.0") {
		t.Fatalf("description %q does not carry health at fault", recs[0].Description)
	}
	if len(emitter.stateChanges) != 1 || emitter.snapshots != 1 {
		t.Fatalf("emitted %d state changes, %d snapshots; want 1 each", len(emitter.stateChanges), emitter.snapshots)
	}

	// Forcing an already-faulted machine is a no-op.
	if _, err := s.ForceError(id); err != nil {
		t.Fatalf("second ForceError: %v", err)
	}
	if n, _ := db.CountQualityRecordsForMachine(id); n != 1 {
		t.Fatalf("quality records after repeat force = %d, want 1", n)
	}
}

func TestForceErrorMissingMachine(t *testing.T) {
	db := testDB(t)
	s, _, _ := testScheduler(t, db, 1, nil)
	if _, err := s.ForceError(999); err == nil {
		t.Fatal("ForceError on missing machine returned nil error")
	}
}

func TestExpireTool(t *testing.T) {
	db := testDB(t)
	id, err := db.CreateTool("EM-10", 60, store.ToolReady)
	if err != nil {
		t.Fatalf("create tool: %v", err)
	}

	s, emitter, _ := testScheduler(t, db, 1, nil)

	tool, err := s.ExpireTool(id)
	if err != nil {
		t.Fatalf("ExpireTool: %v", err)
	}
	if tool.LifePct != 0 || tool.Status != store.ToolExpired {
		t.Fatalf("tool = %+v, want life 0 Expired", tool)
	}

	stored, _ := db.GetTool(id)
	if stored.LifePct != 0 || stored.Status != store.ToolExpired {
		t.Fatalf("stored tool = %+v, want life 0 Expired", stored)
	}
	if len(emitter.toolsExpired) != 1 {
		t.Fatalf("tool expired events = %d, want 1", len(emitter.toolsExpired))
	}
}

func TestInjectQualityRecords(t *testing.T) {
	db := testDB(t)
	if _, err := db.CreateMachine("CNC-01", store.MachineIdle, 90, 90, 1, nil); err != nil {
		t.Fatalf("create machine: %v", err)
	}

	s, _, _ := testScheduler(t, db, 1, nil)

	created, err := s.InjectQualityRecords(5)
	if err != nil {
		t.Fatalf("InjectQualityRecords: %v", err)
	}
	if created != 5 {
		t.Fatalf("created = %d, want 5", created)
	}

	recs, _ := db.ListQualityRecords(10)
	if len(recs) != 5 {
		t.Fatalf("quality records = %d, want 5", len(recs))
	}
	for _, r := range recs {
		if r.Source != "manual" {
			t.Fatalf("record %d source = %s, want manual", r.ID, r.Source)
		}
	}
}
