package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store provides the application's data access layer
type Store struct {
	db *sql.DB
}

// newStore creates a Store from a database connection.
func newStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for advanced operations.
func (s *Store) DB() *sql.DB {
	return s.db
}

// --- Import Methods ---

// CreateImport stores a new import with its records in one transaction.
// The import ID is a fresh UUID; record import IDs are overwritten with it.
func (s *Store) CreateImport(source, format string, records []ActivityRecord) (*Import, error) {
	imp := &Import{
		ID:         uuid.NewString(),
		Source:     source,
		Format:     format,
		RowCount:   len(records),
		ImportedAt: time.Now().UTC().Truncate(time.Second),
	}

	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO imports (id, source, format, row_count, imported_at)
		VALUES (?, ?, ?, ?, ?)`,
		imp.ID, imp.Source, imp.Format, imp.RowCount, imp.ImportedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting import: %w", err)
	}

	if err := insertRecords(ctx, tx, imp.ID, records); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}
	return imp, nil
}

// GetImport retrieves an import by ID.
func (s *Store) GetImport(id string) (*Import, error) {
	row := s.db.QueryRow(`
		SELECT id, source, format, row_count, imported_at
		FROM imports WHERE id = ?`, id)
	imp, err := scanImport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImportNotFound
	}
	return imp, err
}

// LatestImport returns the most recently created import.
func (s *Store) LatestImport() (*Import, error) {
	row := s.db.QueryRow(`
		SELECT id, source, format, row_count, imported_at
		FROM imports ORDER BY imported_at DESC, rowid DESC LIMIT 1`)
	imp, err := scanImport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImportNotFound
	}
	return imp, err
}

// ListImports returns imports, newest first.
func (s *Store) ListImports(limit int) ([]Import, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, source, format, row_count, imported_at
		FROM imports ORDER BY imported_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var imports []Import
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, err
		}
		imports = append(imports, *imp)
	}
	return imports, rows.Err()
}

// DeleteImport removes an import and, by cascade, its records and summaries.
func (s *Store) DeleteImport(id string) error {
	result, err := s.db.Exec(`DELETE FROM imports WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrImportNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImport(row rowScanner) (*Import, error) {
	var imp Import
	var importedAt string
	if err := row.Scan(&imp.ID, &imp.Source, &imp.Format, &imp.RowCount, &importedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, importedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing imported_at %q: %w", importedAt, err)
	}
	imp.ImportedAt = t
	return &imp, nil
}
