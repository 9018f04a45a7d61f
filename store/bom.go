package store

// BOMEdge maps a parent part to a component part with a per-unit quantity.
type BOMEdge struct {
	ID         int64   `json:"id"`
	ParentPart string  `json:"parent_part"`
	ChildPart  string  `json:"child_part"`
	QtyPer     float64 `json:"qty_per"`
}

// InventoryItem is the on-hand stock for one part number. CustomerOwned
// marks shadow stock; it never changes validation results.
type InventoryItem struct {
	ID            int64   `json:"id"`
	PartNumber    string  `json:"part_number"`
	QtyOnHand     float64 `json:"qty_on_hand"`
	CustomerOwned bool    `json:"customer_owned"`
}

func (db *DB) ListBOMChildren(parentPart string) ([]BOMEdge, error) {
	rows, err := db.Query(`SELECT id, parent_part, child_part, qty_per FROM bom_edges WHERE parent_part = ? ORDER BY child_part`, parentPart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var edges []BOMEdge
	for rows.Next() {
		var e BOMEdge
		if err := rows.Scan(&e.ID, &e.ParentPart, &e.ChildPart, &e.QtyPer); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

func (db *DB) CreateBOMEdge(parentPart, childPart string, qtyPer float64) (int64, error) {
	res, err := db.Exec(`INSERT INTO bom_edges (parent_part, child_part, qty_per) VALUES (?, ?, ?)`,
		parentPart, childPart, qtyPer)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) ListInventory() ([]InventoryItem, error) {
	rows, err := db.Query(`SELECT id, part_number, qty_on_hand, customer_owned FROM inventory ORDER BY part_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []InventoryItem
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.ID, &it.PartNumber, &it.QtyOnHand, &it.CustomerOwned); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetOnHand returns on-hand quantity for a part. A part with no inventory
// row counts as zero stock.
func (db *DB) GetOnHand(partNumber string) (float64, error) {
	var qty float64
	err := db.QueryRow(`SELECT COALESCE(SUM(qty_on_hand), 0) FROM inventory WHERE part_number = ?`, partNumber).Scan(&qty)
	return qty, err
}

func (db *DB) UpsertInventory(partNumber string, qtyOnHand float64, customerOwned bool) error {
	_, err := db.Exec(`INSERT INTO inventory (part_number, qty_on_hand, customer_owned) VALUES (?, ?, ?)
		ON CONFLICT(part_number) DO UPDATE SET qty_on_hand=excluded.qty_on_hand, customer_owned=excluded.customer_owned`,
		partNumber, qtyOnHand, customerOwned)
	return err
}
