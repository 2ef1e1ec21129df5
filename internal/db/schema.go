package db

// SchemaVersion is the current database schema version
const SchemaVersion = 3

const schema = `
-- Progression table: singleton row keyed 'current'
CREATE TABLE IF NOT EXISTS progression (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT 'Rep',
    rank TEXT NOT NULL DEFAULT 'E-1',
    total_xp INTEGER NOT NULL DEFAULT 0,
    current_level INTEGER NOT NULL DEFAULT 1,
    closed_deals INTEGER NOT NULL DEFAULT 0,
    streak_days INTEGER NOT NULL DEFAULT 0,
    mentee_count INTEGER NOT NULL DEFAULT 0,
    active_title TEXT DEFAULT '',
    badges TEXT DEFAULT '[]',
    defeated_bosses TEXT DEFAULT '[]',
    passed_exams TEXT DEFAULT '[]',
    titles TEXT DEFAULT '[]',
    completed_modules TEXT DEFAULT '[]',
    boss_attempts TEXT DEFAULT '{}',
    efficiency_metrics TEXT,
    last_activity DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Daily metric aggregates, one row per calendar date
CREATE TABLE IF NOT EXISTS daily_metrics (
    date TEXT PRIMARY KEY,
    dials INTEGER NOT NULL DEFAULT 0,
    connects INTEGER NOT NULL DEFAULT 0,
    calls_under_30s INTEGER NOT NULL DEFAULT 0,
    calls_over_2min INTEGER NOT NULL DEFAULT 0,
    appointments INTEGER NOT NULL DEFAULT 0,
    shows INTEGER NOT NULL DEFAULT 0,
    deals INTEGER NOT NULL DEFAULT 0,
    sms_enrollments INTEGER NOT NULL DEFAULT 0
);

-- Outbox of pending push operations
CREATE TABLE IF NOT EXISTS sync_queue (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    operation TEXT NOT NULL,
    idempotency_key TEXT NOT NULL,
    payload TEXT NOT NULL DEFAULT '{}',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    attempts INTEGER NOT NULL DEFAULT 0,
    last_attempt DATETIME
);
CREATE INDEX IF NOT EXISTS idx_sync_queue_created ON sync_queue(created_at);

-- Append-only local XP activity log
CREATE TABLE IF NOT EXISTS xp_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    event_type TEXT NOT NULL,
    xp_amount INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_xp_events_created ON xp_events(created_at);

-- Schema version bookkeeping
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);
`
