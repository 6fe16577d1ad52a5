package exception

import (
	"context"
	"database/sql"
	"fmt"

	"camphq/internal/adapters/ingest"
	"camphq/internal/adapters/storage"
	"camphq/internal/domain/civil"
	domain "camphq/internal/domain/exception"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ExceptionStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectCols = "id, camp_id, exception_date, status, start_time, end_time, reason"

// GetByID retrieves an Exception by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Exception, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectCols+" FROM schedule_exception WHERE id = ?", id)
	return scanException(row)
}

// GetByCampAndDate retrieves the Exception for a camp on a date, if any.
// PRE: campID is non-empty, date is valid
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByCampAndDate(ctx context.Context, campID string, date civil.Date) (domain.Exception, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectCols+" FROM schedule_exception WHERE camp_id = ? AND exception_date = ?",
		campID, date.String())
	return scanException(row)
}

// Save persists an Exception. The unique index on (camp_id, exception_date)
// makes Save an upsert per date — recording a second exception for the same
// day replaces the first.
// PRE: entity has been validated
// POST: Entity is the camp's only exception for its date
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Exception) error {
	var startStr, endStr sql.NullString
	if !entity.IsCancellation() {
		startStr = sql.NullString{String: entity.Start.String(), Valid: true}
		endStr = sql.NullString{String: entity.End.String(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO schedule_exception (id, camp_id, exception_date, status, start_time, end_time, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(camp_id, exception_date) DO UPDATE SET id=excluded.id, status=excluded.status,
		   start_time=excluded.start_time, end_time=excluded.end_time, reason=excluded.reason`,
		entity.ID, entity.CampID, entity.Date.String(), entity.Status, startStr, endStr, entity.Reason,
	)
	return err
}

// Delete removes an Exception from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM schedule_exception WHERE id = ?", id)
	return err
}

// ListByCampID retrieves a camp's Exceptions.
// PRE: campID is non-empty
// POST: Returns exceptions ordered by date
func (s *SQLiteStore) ListByCampID(ctx context.Context, campID string) ([]domain.Exception, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectCols+" FROM schedule_exception WHERE camp_id = ? ORDER BY exception_date", campID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Exception
	for rows.Next() {
		var entity domain.Exception
		var dateStr string
		var startStr, endStr sql.NullString
		if err := rows.Scan(&entity.ID, &entity.CampID, &dateStr, &entity.Status, &startStr, &endStr, &entity.Reason); err != nil {
			return nil, err
		}
		entity, err = withFields(entity, dateStr, startStr, endStr)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

func scanException(row *sql.Row) (domain.Exception, error) {
	var entity domain.Exception
	var dateStr string
	var startStr, endStr sql.NullString
	err := row.Scan(&entity.ID, &entity.CampID, &dateStr, &entity.Status, &startStr, &endStr, &entity.Reason)
	if err == sql.ErrNoRows {
		return domain.Exception{}, fmt.Errorf("schedule exception not found: %w", err)
	}
	if err != nil {
		return domain.Exception{}, err
	}
	return withFields(entity, dateStr, startStr, endStr)
}

func withFields(entity domain.Exception, dateStr string, startStr, endStr sql.NullString) (domain.Exception, error) {
	date, err := ingest.ParseDate(dateStr)
	if err != nil {
		return domain.Exception{}, fmt.Errorf("exception %s: bad exception_date: %w", entity.ID, err)
	}
	entity.Date = date
	if startStr.Valid {
		start, err := ingest.ParseTimeOfDay(startStr.String)
		if err != nil {
			return domain.Exception{}, fmt.Errorf("exception %s: bad start_time: %w", entity.ID, err)
		}
		entity.Start = start
	}
	if endStr.Valid {
		end, err := ingest.ParseTimeOfDay(endStr.String)
		if err != nil {
			return domain.Exception{}, fmt.Errorf("exception %s: bad end_time: %w", entity.ID, err)
		}
		entity.End = end
	}
	return entity, nil
}
