package store

// Work order statuses
const (
	WorkOrderPending    = "Pending"
	WorkOrderInProgress = "InProgress"
	WorkOrderCompleted  = "Completed"
	WorkOrderCancelled  = "Cancelled"
)

// WorkOrder is a production order for a quantity of a part.
type WorkOrder struct {
	ID         int64   `json:"id"`
	UUID       string  `json:"uuid"`
	PartNumber string  `json:"part_number"`
	Quantity   int     `json:"quantity"`
	Status     string  `json:"status"`
	StartedAt  *string `json:"started_at"`
	CreatedAt  string  `json:"created_at"`
}

const workOrderCols = `id, uuid, part_number, quantity, status, started_at, created_at`

func (db *DB) ListWorkOrders() ([]WorkOrder, error) {
	rows, err := db.Query(`SELECT ` + workOrderCols + ` FROM work_orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []WorkOrder
	for rows.Next() {
		var w WorkOrder
		if err := rows.Scan(&w.ID, &w.UUID, &w.PartNumber, &w.Quantity, &w.Status, &w.StartedAt, &w.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, w)
	}
	return orders, rows.Err()
}

func (db *DB) GetWorkOrder(id int64) (*WorkOrder, error) {
	w := &WorkOrder{}
	err := db.QueryRow(`SELECT `+workOrderCols+` FROM work_orders WHERE id = ?`, id).
		Scan(&w.ID, &w.UUID, &w.PartNumber, &w.Quantity, &w.Status, &w.StartedAt, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (db *DB) CreateWorkOrder(uuid, partNumber string, quantity int) (int64, error) {
	res, err := db.Exec(`INSERT INTO work_orders (uuid, part_number, quantity) VALUES (?, ?, ?)`,
		uuid, partNumber, quantity)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) UpdateWorkOrderStatus(id int64, status string) error {
	_, err := db.Exec(`UPDATE work_orders SET status=? WHERE id=?`, status, id)
	return err
}

// StartWorkOrder flips the order to InProgress and stamps the start time.
func (db *DB) StartWorkOrder(id int64) error {
	_, err := db.Exec(`UPDATE work_orders SET status=?, started_at=datetime('now','localtime') WHERE id=?`,
		WorkOrderInProgress, id)
	return err
}
