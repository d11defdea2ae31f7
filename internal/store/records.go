package store

import (
	"context"
	"database/sql"
	"fmt"
)

func insertRecords(ctx context.Context, tx *sql.Tx, importID string, records []ActivityRecord) error {
	if len(records) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO activity_records (
			import_id, row_index, modality, speed_mph, grade_pct, spm, step_height_m, mass_kg,
			measured_efficiency, theoretical_efficiency, measured_kcal_per_min, theory_net_kcal_per_min
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			importID, r.Row, r.Modality, r.SpeedMPH, r.GradePct, r.SPM, r.StepHeightM, r.MassKG,
			r.MeasuredEfficiency, r.TheoreticalEfficiency, r.MeasuredKcalPerMin, r.TheoryNetKcalPerMin,
		)
		if err != nil {
			return fmt.Errorf("inserting record %d: %w", r.Row, err)
		}
	}
	return nil
}

// GetRecords returns the records of an import in file order.
// Returns ErrImportNotFound if the import doesn't exist.
func (s *Store) GetRecords(importID string) ([]ActivityRecord, error) {
	if _, err := s.GetImport(importID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, import_id, row_index, modality, speed_mph, grade_pct, spm, step_height_m, mass_kg,
			measured_efficiency, theoretical_efficiency, measured_kcal_per_min, theory_net_kcal_per_min
		FROM activity_records
		WHERE import_id = ?
		ORDER BY row_index, id`, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []ActivityRecord{}
	for rows.Next() {
		var r ActivityRecord
		err := rows.Scan(
			&r.ID, &r.ImportID, &r.Row, &r.Modality, &r.SpeedMPH, &r.GradePct, &r.SPM, &r.StepHeightM, &r.MassKG,
			&r.MeasuredEfficiency, &r.TheoreticalEfficiency, &r.MeasuredKcalPerMin, &r.TheoryNetKcalPerMin,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountRecordsByModality returns record counts keyed by raw modality label.
func (s *Store) CountRecordsByModality(importID string) (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT modality, COUNT(*) FROM activity_records
		WHERE import_id = ? GROUP BY modality`, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var modality string
		var n int
		if err := rows.Scan(&modality, &n); err != nil {
			return nil, err
		}
		counts[modality] = n
	}
	return counts, rows.Err()
}
