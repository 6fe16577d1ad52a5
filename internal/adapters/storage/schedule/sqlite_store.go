package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"camphq/internal/adapters/ingest"
	"camphq/internal/adapters/storage"
	domain "camphq/internal/domain/schedule"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ScheduleStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Rule by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Rule, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, camp_id, weekday, start_time, end_time FROM schedule_rule WHERE id = ?", id)
	var entity domain.Rule
	var startStr, endStr string
	err := row.Scan(&entity.ID, &entity.CampID, &entity.Weekday, &startStr, &endStr)
	if err == sql.ErrNoRows {
		return domain.Rule{}, fmt.Errorf("schedule rule not found: %w", err)
	}
	if err != nil {
		return domain.Rule{}, err
	}
	return withTimes(entity, startStr, endStr)
}

// Save persists a Rule to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Rule) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO schedule_rule (id, camp_id, weekday, start_time, end_time)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET camp_id=excluded.camp_id, weekday=excluded.weekday,
		   start_time=excluded.start_time, end_time=excluded.end_time`,
		entity.ID, entity.CampID, entity.Weekday, entity.Start.String(), entity.End.String(),
	)
	return err
}

// Delete removes a Rule from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM schedule_rule WHERE id = ?", id)
	return err
}

// ListByCampID retrieves a camp's Rules in their stored order. Position
// preserves the order staff entered the rules — the resolver's tie-break
// depends on it.
// PRE: campID is non-empty
// POST: Returns rules ordered by position
func (s *SQLiteStore) ListByCampID(ctx context.Context, campID string) ([]domain.Rule, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, camp_id, weekday, start_time, end_time FROM schedule_rule WHERE camp_id = ? ORDER BY position", campID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Rule
	for rows.Next() {
		var entity domain.Rule
		var startStr, endStr string
		if err := rows.Scan(&entity.ID, &entity.CampID, &entity.Weekday, &startStr, &endStr); err != nil {
			return nil, err
		}
		entity, err = withTimes(entity, startStr, endStr)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// ReplaceForCamp atomically swaps a camp's weekly schedule for a new rule set.
// PRE: every rule has been validated and belongs to campID
// POST: Exactly the given rules exist for the camp, positions in slice order
func (s *SQLiteStore) ReplaceForCamp(ctx context.Context, campID string, rules []domain.Rule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM schedule_rule WHERE camp_id = ?", campID); err != nil {
		return err
	}
	for i, r := range rules {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schedule_rule (id, camp_id, weekday, start_time, end_time, position) VALUES (?, ?, ?, ?, ?, ?)",
			r.ID, campID, r.Weekday, r.Start.String(), r.End.String(), i,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func withTimes(entity domain.Rule, startStr, endStr string) (domain.Rule, error) {
	start, err := ingest.ParseTimeOfDay(startStr)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("schedule rule %s: bad start_time: %w", entity.ID, err)
	}
	end, err := ingest.ParseTimeOfDay(endStr)
	if err != nil {
		return domain.Rule{}, fmt.Errorf("schedule rule %s: bad end_time: %w", entity.ID, err)
	}
	entity.Start = start
	entity.End = end
	return entity, nil
}
