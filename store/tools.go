package store

// Tool statuses
const (
	ToolReady       = "Ready"
	ToolInUse       = "InUse"
	ToolExpired     = "Expired"
	ToolMaintenance = "Maintenance"
)

// Tool is a cutting tool or fixture mounted on a machine.
type Tool struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	LifePct float64 `json:"life_pct"`
	Status  string  `json:"status"`
}

func (db *DB) ListTools() ([]Tool, error) {
	rows, err := db.Query(`SELECT id, name, life_pct, status FROM tools ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tools []Tool
	for rows.Next() {
		var t Tool
		if err := rows.Scan(&t.ID, &t.Name, &t.LifePct, &t.Status); err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

func (db *DB) GetTool(id int64) (*Tool, error) {
	t := &Tool{}
	err := db.QueryRow(`SELECT id, name, life_pct, status FROM tools WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.LifePct, &t.Status)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (db *DB) CreateTool(name string, lifePct float64, status string) (int64, error) {
	res, err := db.Exec(`INSERT INTO tools (name, life_pct, status) VALUES (?, ?, ?)`, name, lifePct, status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) UpdateToolLife(id int64, lifePct float64, status string) error {
	_, err := db.Exec(`UPDATE tools SET life_pct=?, status=? WHERE id=?`, lifePct, status, id)
	return err
}
