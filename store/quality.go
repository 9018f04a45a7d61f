package store

// Quality record severities
const (
	SeverityMinor    = "Minor"
	SeverityMajor    = "Major"
	SeverityCritical = "Critical"
)

// QualityRecord is an auto- or manually-raised non-conformance record.
// Rows are append-only; the core never rewrites or deletes them.
type QualityRecord struct {
	ID          int64  `json:"id"`
	MachineID   *int64 `json:"machine_id"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Source      string `json:"source"`
	CreatedAt   string `json:"created_at"`
}

func (db *DB) ListQualityRecords(limit int) ([]QualityRecord, error) {
	rows, err := db.Query(`SELECT id, machine_id, severity, description, source, created_at
		FROM quality_records ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []QualityRecord
	for rows.Next() {
		var q QualityRecord
		if err := rows.Scan(&q.ID, &q.MachineID, &q.Severity, &q.Description, &q.Source, &q.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, q)
	}
	return recs, rows.Err()
}

func (db *DB) CountQualityRecordsForMachine(machineID int64) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM quality_records WHERE machine_id = ?`, machineID).Scan(&n)
	return n, err
}

func (db *DB) InsertQualityRecord(machineID *int64, severity, description, source string) (int64, error) {
	res, err := db.Exec(`INSERT INTO quality_records (machine_id, severity, description, source) VALUES (?, ?, ?, ?)`,
		machineID, severity, description, source)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
