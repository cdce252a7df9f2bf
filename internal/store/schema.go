package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshot (
    id             INTEGER PRIMARY KEY CHECK (id = 1),
    month_to_date  REAL NOT NULL,
    fetched_at     TEXT NOT NULL,
    saved_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_services (
    rank      INTEGER PRIMARY KEY,
    service   TEXT NOT NULL,
    cost      REAL NOT NULL,
    activity  INTEGER
);
`
