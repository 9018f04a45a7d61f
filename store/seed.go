package store

import "github.com/google/uuid"

// SeedDemoData populates an empty database with a small production cell:
// machines with mounted tools, operators, approved and locked FAI parts, a
// two-level BOM with stock, and a few pending work orders. Called once at
// startup when the machines table is empty, so restarts don't duplicate.
func (db *DB) SeedDemoData() error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM machines`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	toolIDs := make([]int64, 0, 4)
	tools := []struct {
		name    string
		lifePct float64
		status  string
	}{
		{"EM-10 End Mill", 82.5, ToolReady},
		{"DR-4 Drill", 45.0, ToolReady},
		{"TP-2 Tap", 12.0, ToolReady},
		{"FC-50 Face Mill", 3.5, ToolReady},
	}
	for _, t := range tools {
		id, err := db.CreateTool(t.name, t.lifePct, t.status)
		if err != nil {
			return err
		}
		toolIDs = append(toolIDs, id)
	}

	machines := []struct {
		name    string
		status  string
		health  float64
		oee     float64
		minComp int
		tool    int
	}{
		{"CNC-01", MachineRunning, 92.0, 88.0, 2, 0},
		{"CNC-02", MachineRunning, 64.0, 71.5, 3, 1},
		{"CNC-03", MachineIdle, 78.0, 80.0, 2, 2},
		{"PRESS-01", MachineRunning, 35.0, 62.0, 1, 3},
		{"LATHE-01", MachineIdle, 97.0, 95.0, 2, -1},
	}
	for _, m := range machines {
		var toolID *int64
		if m.tool >= 0 {
			toolID = &toolIDs[m.tool]
		}
		if _, err := db.CreateMachine(m.name, m.status, m.health, m.oee, m.minComp, toolID); err != nil {
			return err
		}
	}

	users := []struct {
		name  string
		role  string
		level int
	}{
		{"Ana Kovacs", "operator", 3},
		{"Ben Ortiz", "operator", 2},
		{"Chen Wei", "operator", 1},
		{"Dana Fischer", "quality", 4},
	}
	for _, u := range users {
		if _, err := db.CreateUser(u.name, u.role, u.level); err != nil {
			return err
		}
	}

	fais := []struct {
		part     string
		revision string
		status   string
		locked   bool
	}{
		{"HOUSING-100", "B", FAIApproved, false},
		{"BRACKET-200", "A", FAIInProgress, true},
		{"SHAFT-300", "C", FAIApproved, false},
		{"COVER-400", "A", FAIPlanned, true},
	}
	for _, f := range fais {
		if _, err := db.CreateFAIRecord(f.part, f.revision, f.status, f.locked); err != nil {
			return err
		}
	}

	boms := []struct {
		parent string
		child  string
		qty    float64
	}{
		{"HOUSING-100", "CASTING-101", 1},
		{"HOUSING-100", "INSERT-102", 4},
		{"SHAFT-300", "BAR-301", 1},
		{"COVER-400", "SHEET-401", 1},
	}
	for _, b := range boms {
		if _, err := db.CreateBOMEdge(b.parent, b.child, b.qty); err != nil {
			return err
		}
	}

	stock := []struct {
		part          string
		qty           float64
		customerOwned bool
	}{
		{"CASTING-101", 250, false},
		{"INSERT-102", 1200, false},
		{"BAR-301", 40, true},
		{"SHEET-401", 0, false},
	}
	for _, s := range stock {
		if err := db.UpsertInventory(s.part, s.qty, s.customerOwned); err != nil {
			return err
		}
	}

	orders := []struct {
		part string
		qty  int
	}{
		{"HOUSING-100", 50},
		{"BRACKET-200", 25},
		{"SHAFT-300", 10},
	}
	for _, o := range orders {
		if _, err := db.CreateWorkOrder(uuid.New().String(), o.part, o.qty); err != nil {
			return err
		}
	}

	return nil
}
