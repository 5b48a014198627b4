package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region exec-row
// ExecRow is a single row in the exec_log table: one recorded call.
// SessionID groups the calls of one process lifetime; the in-memory
// history buffer starts empty at each session boundary.
type ExecRow struct {
	SessionID string
	TurnID    string
	Code      string
	Dimension string
	Input     float64
	Output    float64
	CreatedAt time.Time
}

// #endregion exec-row

// #region log-execution
// LogExecution appends one call to the exec_log table.
func LogExecution(db *sql.DB, row ExecRow) error {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	_, err := db.Exec(
		`INSERT INTO exec_log (session_id, turn_id, code, dimension, input, output, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.SessionID, row.TurnID, row.Code, row.Dimension, row.Input, row.Output,
		row.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log execution: %w", err)
	}
	return nil
}

// #endregion log-execution

// #region list-executions
// ListExecutions returns recorded calls oldest first. limit <= 0 means
// no limit.
func ListExecutions(db *sql.DB, limit int) ([]ExecRow, error) {
	query := `SELECT session_id, turn_id, code, dimension, input, output, created_at
	          FROM exec_log ORDER BY id ASC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		// Keep the most recent rows while preserving call order.
		query = `SELECT session_id, turn_id, code, dimension, input, output, created_at FROM (
		           SELECT id, session_id, turn_id, code, dimension, input, output, created_at
		           FROM exec_log ORDER BY id DESC LIMIT ?
		         ) ORDER BY id ASC`
		rows, err = db.Query(query, limit)
	} else {
		rows, err = db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list executions: %w", err)
	}
	defer rows.Close()

	var out []ExecRow
	for rows.Next() {
		var row ExecRow
		var createdStr string
		if err := rows.Scan(&row.SessionID, &row.TurnID, &row.Code, &row.Dimension,
			&row.Input, &row.Output, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, row)
	}
	return out, rows.Err()
}

// #endregion list-executions
