package store

import "database/sql"

// Machine statuses
const (
	MachineIdle        = "Idle"
	MachineRunning     = "Running"
	MachineError       = "Error"
	MachineMaintenance = "Maintenance"
)

// Machine is the digital-twin row for a physical machine.
type Machine struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Status             string  `json:"status"`
	Health             float64 `json:"health"`
	OEE                float64 `json:"oee"`
	MinCompetency      int     `json:"min_competency"`
	ToolID             *int64  `json:"tool_id"`
	PredictedRUL       float64 `json:"predicted_rul"`
	FailureProbability float64 `json:"failure_probability"`
	UpdatedAt          string  `json:"updated_at"`
}

const machineCols = `id, name, status, health, oee, min_competency, tool_id, predicted_rul, failure_probability, updated_at`

func scanMachine(row interface{ Scan(...any) error }) (*Machine, error) {
	m := &Machine{}
	err := row.Scan(&m.ID, &m.Name, &m.Status, &m.Health, &m.OEE, &m.MinCompetency,
		&m.ToolID, &m.PredictedRUL, &m.FailureProbability, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (db *DB) ListMachines() ([]Machine, error) {
	rows, err := db.Query(`SELECT ` + machineCols + ` FROM machines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var machines []Machine
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, err
		}
		machines = append(machines, *m)
	}
	return machines, rows.Err()
}

func (db *DB) GetMachine(id int64) (*Machine, error) {
	return scanMachine(db.QueryRow(`SELECT `+machineCols+` FROM machines WHERE id = ?`, id))
}

func (db *DB) GetMachineByName(name string) (*Machine, error) {
	return scanMachine(db.QueryRow(`SELECT `+machineCols+` FROM machines WHERE name = ?`, name))
}

func (db *DB) CreateMachine(name, status string, health, oee float64, minCompetency int, toolID *int64) (int64, error) {
	res, err := db.Exec(`INSERT INTO machines (name, status, health, oee, min_competency, tool_id) VALUES (?, ?, ?, ?, ?, ?)`,
		name, status, health, oee, minCompetency, toolID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateMachineTwin writes the fields the simulation mutates in one statement.
func (db *DB) UpdateMachineTwin(m *Machine) error {
	_, err := db.Exec(`UPDATE machines
		SET status=?, health=?, oee=?, predicted_rul=?, failure_probability=?, updated_at=datetime('now','localtime')
		WHERE id=?`,
		m.Status, m.Health, m.OEE, m.PredictedRUL, m.FailureProbability, m.ID)
	return err
}

func (db *DB) UpdateMachineStatus(id int64, status string) error {
	_, err := db.Exec(`UPDATE machines SET status=?, updated_at=datetime('now','localtime') WHERE id=?`, status, id)
	return err
}

// ErrNotFound re-exports sql.ErrNoRows so callers outside the store
// don't need a database/sql import to classify lookups.
var ErrNotFound = sql.ErrNoRows
