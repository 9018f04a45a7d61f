package store

// FAI statuses
const (
	FAIPlanned    = "Planned"
	FAIInProgress = "InProgress"
	FAICompleted  = "Completed"
	FAIApproved   = "Approved"
	FAIRejected   = "Rejected"
)

// FAIRecord is a first-article-inspection record for a part revision.
// Production of the part is locked until the record is approved.
type FAIRecord struct {
	ID               int64  `json:"id"`
	PartNumber       string `json:"part_number"`
	Revision         string `json:"revision"`
	Status           string `json:"status"`
	ProductionLocked bool   `json:"production_locked"`
	CreatedAt        string `json:"created_at"`
}

func (db *DB) ListFAIRecords() ([]FAIRecord, error) {
	rows, err := db.Query(`SELECT id, part_number, revision, status, production_locked, created_at
		FROM fai_records ORDER BY part_number, revision`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []FAIRecord
	for rows.Next() {
		var f FAIRecord
		if err := rows.Scan(&f.ID, &f.PartNumber, &f.Revision, &f.Status, &f.ProductionLocked, &f.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, f)
	}
	return recs, rows.Err()
}

// GetFAIByPart returns the latest-revision FAI record for a part, or
// ErrNotFound if the part has no record at all.
func (db *DB) GetFAIByPart(partNumber string) (*FAIRecord, error) {
	f := &FAIRecord{}
	err := db.QueryRow(`SELECT id, part_number, revision, status, production_locked, created_at
		FROM fai_records WHERE part_number = ? ORDER BY revision DESC LIMIT 1`, partNumber).
		Scan(&f.ID, &f.PartNumber, &f.Revision, &f.Status, &f.ProductionLocked, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (db *DB) CreateFAIRecord(partNumber, revision, status string, locked bool) (int64, error) {
	res, err := db.Exec(`INSERT INTO fai_records (part_number, revision, status, production_locked) VALUES (?, ?, ?, ?)`,
		partNumber, revision, status, locked)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ApproveFAI is the only transition that clears the production lock.
func (db *DB) ApproveFAI(id int64) error {
	_, err := db.Exec(`UPDATE fai_records SET status=?, production_locked=0 WHERE id=?`, FAIApproved, id)
	return err
}
