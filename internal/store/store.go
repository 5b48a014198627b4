package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patternlab/adaptive-rules/go-executor/internal/pattern"
	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS rules (
	code         TEXT PRIMARY KEY,
	rule_id      TEXT NOT NULL,
	kind         TEXT NOT NULL,
	params_json  TEXT NOT NULL,
	canonical    TEXT NOT NULL,
	origin       TEXT NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS synth_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id      TEXT NOT NULL,
	code          TEXT,
	origin_code   TEXT,
	canonical     TEXT NOT NULL,
	dimension     TEXT NOT NULL,
	bucket        INTEGER NOT NULL,
	slope         REAL NOT NULL,
	intercept     REAL NOT NULL,
	r_squared     REAL NOT NULL,
	sample_count  INTEGER NOT NULL,
	decision      TEXT NOT NULL,
	reason        TEXT,
	soft_score    REAL NOT NULL,
	trust_level   TEXT NOT NULL,
	evicted       INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session_state (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	trust_level  TEXT NOT NULL,
	rule_count   INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS exec_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL DEFAULT '',
	turn_id     TEXT NOT NULL,
	code        TEXT NOT NULL,
	dimension   TEXT NOT NULL,
	input       REAL NOT NULL,
	output      REAL NOT NULL,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store persists the pattern table and synthesis provenance in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region save-rule
// SaveRule upserts one code→rule mapping.
func (s *Store) SaveRule(code string, r rule.Rule, origin string) (RuleRecord, error) {
	params, err := json.Marshal(r)
	if err != nil {
		return RuleRecord{}, fmt.Errorf("marshal rule: %w", err)
	}

	rec := RuleRecord{
		RuleID:     uuid.New().String(),
		Code:       code,
		Kind:       string(r.Kind),
		ParamsJSON: string(params),
		Canonical:  r.String(),
		Origin:     origin,
		CreatedAt:  time.Now().UTC(),
	}

	_, err = s.db.Exec(
		`INSERT INTO rules (code, rule_id, kind, params_json, canonical, origin, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET
		   rule_id = excluded.rule_id,
		   kind = excluded.kind,
		   params_json = excluded.params_json,
		   canonical = excluded.canonical,
		   origin = excluded.origin,
		   created_at = excluded.created_at`,
		rec.Code, rec.RuleID, rec.Kind, rec.ParamsJSON, rec.Canonical, rec.Origin,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RuleRecord{}, fmt.Errorf("save rule: %w", err)
	}
	return rec, nil
}

// #endregion save-rule

// #region get-rule
// GetRule retrieves one persisted mapping by code.
func (s *Store) GetRule(code string) (RuleRecord, rule.Rule, error) {
	var rec RuleRecord
	var createdStr string

	err := s.db.QueryRow(
		`SELECT code, rule_id, kind, params_json, canonical, origin, created_at
		 FROM rules WHERE code = ?`, code,
	).Scan(&rec.Code, &rec.RuleID, &rec.Kind, &rec.ParamsJSON, &rec.Canonical, &rec.Origin, &createdStr)
	if err != nil {
		return RuleRecord{}, rule.Rule{}, fmt.Errorf("get rule %s: %w", code, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)

	var r rule.Rule
	if err := json.Unmarshal([]byte(rec.ParamsJSON), &r); err != nil {
		return RuleRecord{}, rule.Rule{}, fmt.Errorf("unmarshal rule %s: %w", code, err)
	}
	return rec, r, nil
}

// #endregion get-rule

// #region list-rules
// ListRules returns all persisted mappings ordered by code.
func (s *Store) ListRules() ([]RuleRecord, error) {
	rows, err := s.db.Query(
		`SELECT code, rule_id, kind, params_json, canonical, origin, created_at
		 FROM rules ORDER BY code ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	var records []RuleRecord
	for rows.Next() {
		var rec RuleRecord
		var createdStr string
		if err := rows.Scan(&rec.Code, &rec.RuleID, &rec.Kind, &rec.ParamsJSON,
			&rec.Canonical, &rec.Origin, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-rules

// #region delete-rule
// DeleteRule removes one persisted mapping.
func (s *Store) DeleteRule(code string) error {
	res, err := s.db.Exec(`DELETE FROM rules WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("rule %s not found", code)
	}
	return nil
}

// #endregion delete-rule

// #region load-table
// LoadTable materializes every persisted rule into table, overlaying
// the seeds already present.
func (s *Store) LoadTable(table *pattern.Table) (int, error) {
	records, err := s.ListRules()
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, rec := range records {
		var r rule.Rule
		if err := json.Unmarshal([]byte(rec.ParamsJSON), &r); err != nil {
			return loaded, fmt.Errorf("unmarshal rule %s: %w", rec.Code, err)
		}
		if err := table.Set(rec.Code, r); err != nil {
			return loaded, fmt.Errorf("load rule %s: %w", rec.Code, err)
		}
		loaded++
	}
	return loaded, nil
}

// #endregion load-table
