package db

const postgresSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id         UUID PRIMARY KEY,
	role       TEXT NOT NULL CHECK (role IN ('resume', 'job_description')),
	title      TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS analyses (
	id             UUID PRIMARY KEY,
	resume_id      UUID REFERENCES documents(id) ON DELETE SET NULL,
	job_id         UUID REFERENCES documents(id) ON DELETE SET NULL,
	resume_title   TEXT NOT NULL DEFAULT '',
	job_title      TEXT NOT NULL DEFAULT '',
	overall_score  DOUBLE PRECISION NOT NULL,
	score_category TEXT NOT NULL,
	result         JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	role       TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS analyses (
	id             TEXT PRIMARY KEY,
	resume_id      TEXT,
	job_id         TEXT,
	resume_title   TEXT NOT NULL DEFAULT '',
	job_title      TEXT NOT NULL DEFAULT '',
	overall_score  REAL NOT NULL,
	score_category TEXT NOT NULL,
	result         TEXT NOT NULL,
	created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC);
`
