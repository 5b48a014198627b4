package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-synthesis
// LogSynthesis writes a provenance entry to the synth_log table.
func LogSynthesis(db *sql.DB, row SynthesisRow) error {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO synth_log (event_id, code, origin_code, canonical, dimension, bucket,
		   slope, intercept, r_squared, sample_count, decision, reason, soft_score,
		   trust_level, evicted, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.EventID,
		nullIfEmpty(row.Code),
		nullIfEmpty(row.OriginCode),
		row.Canonical,
		row.Dimension,
		row.Bucket,
		row.Slope,
		row.Intercept,
		row.RSquared,
		row.SampleCount,
		row.Decision,
		nullIfEmpty(row.Reason),
		row.SoftScore,
		row.TrustLevel,
		row.Evicted,
		row.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log synthesis: %w", err)
	}
	return nil
}

// #endregion log-synthesis

// #region list-syntheses
// ListSyntheses returns the most recent provenance rows, newest first.
func ListSyntheses(db *sql.DB, limit int) ([]SynthesisRow, error) {
	rows, err := db.Query(
		`SELECT event_id, code, origin_code, canonical, dimension, bucket,
		   slope, intercept, r_squared, sample_count, decision, reason, soft_score,
		   trust_level, evicted, created_at
		 FROM synth_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list syntheses: %w", err)
	}
	defer rows.Close()

	var out []SynthesisRow
	for rows.Next() {
		var row SynthesisRow
		var code, origin, reason sql.NullString
		var createdStr string
		if err := rows.Scan(&row.EventID, &code, &origin, &row.Canonical, &row.Dimension,
			&row.Bucket, &row.Slope, &row.Intercept, &row.RSquared, &row.SampleCount,
			&row.Decision, &reason, &row.SoftScore, &row.TrustLevel, &row.Evicted,
			&createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row.Code = code.String
		row.OriginCode = origin.String
		row.Reason = reason.String
		row.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, row)
	}
	return out, rows.Err()
}

// #endregion list-syntheses

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
