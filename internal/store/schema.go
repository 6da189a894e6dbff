package store

// schemaSQL is valid for both SQLite and PostgreSQL. Money columns are TEXT so
// decimals round-trip exactly.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS trajectory_snapshots (
    id                   TEXT PRIMARY KEY,
    user_id              TEXT NOT NULL,
    snapshot_date        TEXT NOT NULL,
    net_worth            TEXT NOT NULL,
    total_assets         TEXT NOT NULL,
    total_liabilities    TEXT NOT NULL,
    fire_number          TEXT NOT NULL,
    years_to_fire        TEXT,
    payload              TEXT NOT NULL,
    updated_at           TEXT NOT NULL,
    UNIQUE (user_id, snapshot_date)
);

CREATE INDEX IF NOT EXISTS idx_trajectory_snapshots_user_date
    ON trajectory_snapshots(user_id, snapshot_date);
`

const upsertSQL = `INSERT INTO trajectory_snapshots
    (id, user_id, snapshot_date, net_worth, total_assets, total_liabilities,
     fire_number, years_to_fire, payload, updated_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT (user_id, snapshot_date) DO UPDATE SET
        net_worth = excluded.net_worth,
        total_assets = excluded.total_assets,
        total_liabilities = excluded.total_liabilities,
        fire_number = excluded.fire_number,
        years_to_fire = excluded.years_to_fire,
        payload = excluded.payload,
        updated_at = excluded.updated_at
    RETURNING id`

const selectColumns = `SELECT id, user_id, snapshot_date, net_worth, total_assets,
    total_liabilities, fire_number, years_to_fire, payload, updated_at
    FROM trajectory_snapshots`
