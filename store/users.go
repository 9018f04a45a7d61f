package store

// User is an operator or other shop-floor user. Read-only from the core;
// the identity layer owns creation and role management.
type User struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	CompetencyLevel int    `json:"competency_level"`
}

func (db *DB) ListUsers() ([]User, error) {
	rows, err := db.Query(`SELECT id, name, role, competency_level FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.CompetencyLevel); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (db *DB) GetUser(id int64) (*User, error) {
	u := &User{}
	err := db.QueryRow(`SELECT id, name, role, competency_level FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Role, &u.CompetencyLevel)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (db *DB) CreateUser(name, role string, competencyLevel int) (int64, error) {
	res, err := db.Exec(`INSERT INTO users (name, role, competency_level) VALUES (?, ?, ?)`, name, role, competencyLevel)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
