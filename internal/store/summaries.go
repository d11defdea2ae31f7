package store

import (
	"context"
	"fmt"
)

// ReplaceSummaries replaces both summary tables of an import in one transaction.
func (s *Store) ReplaceSummaries(importID string, treadmill []TreadmillSummary, stair []StairSummary) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM treadmill_summaries WHERE import_id = ?`, importID); err != nil {
		return fmt.Errorf("clearing treadmill summaries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stair_summaries WHERE import_id = ?`, importID); err != nil {
		return fmt.Errorf("clearing stair summaries: %w", err)
	}

	for _, row := range treadmill {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO treadmill_summaries (import_id, speed_mph, grade_pct, n, eff_meas, eff_theory)
			VALUES (?, ?, ?, ?, ?, ?)`,
			importID, row.SpeedMPH, row.GradePct, row.N, row.EffMeasured, row.EffTheory,
		)
		if err != nil {
			return fmt.Errorf("inserting treadmill summary: %w", err)
		}
	}

	for _, row := range stair {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO stair_summaries (import_id, spm, n, aw, net, efficiency_theory, efficiency_is_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			importID, row.SPM, row.N, row.AWKcalPerMin, row.NetKcalPerMin, row.EfficiencyTheory, boolToInt(row.EfficiencyIsCount),
		)
		if err != nil {
			return fmt.Errorf("inserting stair summary: %w", err)
		}
	}

	return tx.Commit()
}

// GetTreadmillSummaries returns stored treadmill summaries sorted by speed then grade.
func (s *Store) GetTreadmillSummaries(importID string) ([]TreadmillSummary, error) {
	rows, err := s.db.Query(`
		SELECT speed_mph, grade_pct, n, eff_meas, eff_theory
		FROM treadmill_summaries
		WHERE import_id = ?
		ORDER BY speed_mph, grade_pct`, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TreadmillSummary{}
	for rows.Next() {
		var row TreadmillSummary
		if err := rows.Scan(&row.SpeedMPH, &row.GradePct, &row.N, &row.EffMeasured, &row.EffTheory); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetStairSummaries returns stored stair summaries sorted by spm.
func (s *Store) GetStairSummaries(importID string) ([]StairSummary, error) {
	rows, err := s.db.Query(`
		SELECT spm, n, aw, net, efficiency_theory, efficiency_is_count
		FROM stair_summaries
		WHERE import_id = ?
		ORDER BY spm`, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StairSummary{}
	for rows.Next() {
		var row StairSummary
		var isCount int64
		if err := rows.Scan(&row.SPM, &row.N, &row.AWKcalPerMin, &row.NetKcalPerMin, &row.EfficiencyTheory, &isCount); err != nil {
			return nil, err
		}
		row.EfficiencyIsCount = isCount != 0
		out = append(out, row)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
