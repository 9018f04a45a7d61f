package store

const schema = `
CREATE TABLE IF NOT EXISTS admin_users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);

CREATE TABLE IF NOT EXISTS machines (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    name                TEXT NOT NULL UNIQUE,
    status              TEXT NOT NULL DEFAULT 'Idle',
    health              REAL NOT NULL DEFAULT 100,
    oee                 REAL NOT NULL DEFAULT 85,
    min_competency      INTEGER NOT NULL DEFAULT 1,
    tool_id             INTEGER REFERENCES tools(id) ON DELETE SET NULL,
    predicted_rul       REAL NOT NULL DEFAULT 0,
    failure_probability REAL NOT NULL DEFAULT 0,
    updated_at          TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);

CREATE TABLE IF NOT EXISTS tools (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    name     TEXT NOT NULL UNIQUE,
    life_pct REAL NOT NULL DEFAULT 100,
    status   TEXT NOT NULL DEFAULT 'Ready'
);

CREATE TABLE IF NOT EXISTS fai_records (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    part_number       TEXT NOT NULL,
    revision          TEXT NOT NULL DEFAULT 'A',
    status            TEXT NOT NULL DEFAULT 'Planned',
    production_locked INTEGER NOT NULL DEFAULT 1,
    created_at        TEXT NOT NULL DEFAULT (datetime('now','localtime')),
    UNIQUE(part_number, revision)
);

CREATE TABLE IF NOT EXISTS users (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    name             TEXT NOT NULL,
    role             TEXT NOT NULL DEFAULT 'operator',
    competency_level INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS work_orders (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    uuid        TEXT NOT NULL UNIQUE,
    part_number TEXT NOT NULL,
    quantity    INTEGER NOT NULL DEFAULT 1,
    status      TEXT NOT NULL DEFAULT 'Pending',
    started_at  TEXT,
    created_at  TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);
CREATE INDEX IF NOT EXISTS idx_work_orders_status ON work_orders(status);

CREATE TABLE IF NOT EXISTS bom_edges (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    parent_part TEXT NOT NULL,
    child_part  TEXT NOT NULL,
    qty_per     REAL NOT NULL DEFAULT 1,
    UNIQUE(parent_part, child_part)
);
CREATE INDEX IF NOT EXISTS idx_bom_parent ON bom_edges(parent_part);

CREATE TABLE IF NOT EXISTS inventory (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    part_number    TEXT NOT NULL UNIQUE,
    qty_on_hand    REAL NOT NULL DEFAULT 0,
    customer_owned INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS quality_records (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    machine_id  INTEGER REFERENCES machines(id),
    severity    TEXT NOT NULL DEFAULT 'Minor',
    description TEXT NOT NULL DEFAULT '',
    source      TEXT NOT NULL DEFAULT 'simulation',
    created_at  TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);

CREATE TABLE IF NOT EXISTS production_log (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    work_order_id INTEGER REFERENCES work_orders(id),
    machine_id    INTEGER REFERENCES machines(id),
    operator_id   INTEGER REFERENCES users(id),
    action        TEXT NOT NULL,
    detail        TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);

CREATE TABLE IF NOT EXISTS outbox (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    topic      TEXT NOT NULL,
    payload    BLOB NOT NULL,
    msg_type   TEXT NOT NULL DEFAULT '',
    retries    INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now','localtime')),
    sent_at    TEXT
);
CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox(sent_at) WHERE sent_at IS NULL;
`

func (db *DB) migrate() error {
	_, err := db.Exec(schema)
	return err
}
