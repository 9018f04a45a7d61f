package store

// Production log actions
const (
	LogActionStart = "START"
	LogActionStop  = "STOP"
)

// ProductionLogEntry records a start/stop action for traceability.
// Append-only; past entries are never rewritten.
type ProductionLogEntry struct {
	ID          int64  `json:"id"`
	WorkOrderID *int64 `json:"work_order_id"`
	MachineID   *int64 `json:"machine_id"`
	OperatorID  *int64 `json:"operator_id"`
	Action      string `json:"action"`
	Detail      string `json:"detail"`
	CreatedAt   string `json:"created_at"`
}

func (db *DB) ListProductionLog(limit int) ([]ProductionLogEntry, error) {
	rows, err := db.Query(`SELECT id, work_order_id, machine_id, operator_id, action, detail, created_at
		FROM production_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []ProductionLogEntry
	for rows.Next() {
		var e ProductionLogEntry
		if err := rows.Scan(&e.ID, &e.WorkOrderID, &e.MachineID, &e.OperatorID, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (db *DB) ListProductionLogForWorkOrder(workOrderID int64) ([]ProductionLogEntry, error) {
	rows, err := db.Query(`SELECT id, work_order_id, machine_id, operator_id, action, detail, created_at
		FROM production_log WHERE work_order_id = ? ORDER BY id`, workOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []ProductionLogEntry
	for rows.Next() {
		var e ProductionLogEntry
		if err := rows.Scan(&e.ID, &e.WorkOrderID, &e.MachineID, &e.OperatorID, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (db *DB) InsertProductionLog(workOrderID, machineID, operatorID *int64, action, detail string) (int64, error) {
	res, err := db.Exec(`INSERT INTO production_log (work_order_id, machine_id, operator_id, action, detail) VALUES (?, ?, ?, ?, ?)`,
		workOrderID, machineID, operatorID, action, detail)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
