package store

// #region imports
import (
	"database/sql"
	"fmt"
	"time"
)

// #endregion imports

// #region types

// SessionRow is one persisted executor session snapshot, written when
// the trust level changes so a later run can resume where it left off.
type SessionRow struct {
	TrustLevel string
	RuleCount  int
	CreatedAt  time.Time
}

// #endregion types

// #region save-session

// SaveSession records the current trust level and rule count.
func (s *Store) SaveSession(trustLevel string, ruleCount int) error {
	_, err := s.db.Exec(
		`INSERT INTO session_state (trust_level, rule_count, created_at) VALUES (?, ?, ?)`,
		trustLevel, ruleCount, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// #endregion save-session

// #region latest-session

// LatestSession returns the most recent session snapshot, or nil if no
// session has been recorded yet.
func (s *Store) LatestSession() (*SessionRow, error) {
	row := s.db.QueryRow(
		`SELECT trust_level, rule_count, created_at FROM session_state ORDER BY id DESC LIMIT 1`,
	)
	var sess SessionRow
	var createdStr string
	if err := row.Scan(&sess.TrustLevel, &sess.RuleCount, &createdStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest session: %w", err)
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return &sess, nil
}

// #endregion latest-session
