package cycles

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const cycleColumns = "id, name, start_date, review_date, end_date"

func (s *Store) ListCycles(ctx context.Context) ([]Cycle, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+cycleColumns+" FROM evaluation_cycles ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Cycle
	for rows.Next() {
		var c Cycle
		if err := rows.Scan(&c.ID, &c.Name, &c.StartDate, &c.ReviewDate, &c.EndDate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCycle(ctx context.Context, cycleID string) (Cycle, error) {
	var c Cycle
	err := s.DB.QueryRow(ctx, "SELECT "+cycleColumns+" FROM evaluation_cycles WHERE id = $1", cycleID).
		Scan(&c.ID, &c.Name, &c.StartDate, &c.ReviewDate, &c.EndDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Cycle{}, ErrCycleNotFound
	}
	if err != nil {
		return Cycle{}, err
	}
	return c, nil
}

func (s *Store) CreateCycle(ctx context.Context, name string, startDate, reviewDate, endDate time.Time) (Cycle, error) {
	var c Cycle
	err := s.DB.QueryRow(ctx, `
    INSERT INTO evaluation_cycles (name, start_date, review_date, end_date)
    VALUES ($1,$2,$3,$4)
    RETURNING `+cycleColumns+`
  `, name, startDate, reviewDate, endDate).Scan(&c.ID, &c.Name, &c.StartDate, &c.ReviewDate, &c.EndDate)
	if err != nil {
		return Cycle{}, err
	}
	return c, nil
}

// CurrentCycle is the cycle whose window contains now, preferring the most
// recently started when windows overlap.
func (s *Store) CurrentCycle(ctx context.Context, now time.Time) (Cycle, error) {
	var c Cycle
	err := s.DB.QueryRow(ctx, `
    SELECT `+cycleColumns+`
    FROM evaluation_cycles
    WHERE start_date <= $1 AND end_date >= $1
    ORDER BY start_date DESC
    LIMIT 1
  `, now).Scan(&c.ID, &c.Name, &c.StartDate, &c.ReviewDate, &c.EndDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Cycle{}, ErrNoCurrentCycle
	}
	if err != nil {
		return Cycle{}, err
	}
	return c, nil
}

// LastClosedCycle is the most recently ended cycle with end_date < now.
func (s *Store) LastClosedCycle(ctx context.Context, now time.Time) (Cycle, error) {
	var c Cycle
	err := s.DB.QueryRow(ctx, `
    SELECT `+cycleColumns+`
    FROM evaluation_cycles
    WHERE end_date < $1
    ORDER BY end_date DESC
    LIMIT 1
  `, now).Scan(&c.ID, &c.Name, &c.StartDate, &c.ReviewDate, &c.EndDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Cycle{}, ErrCycleNotFound
	}
	if err != nil {
		return Cycle{}, err
	}
	return c, nil
}

// RecentCycles lists the current and most recently closed cycles, newest
// start first, up to limit.
func (s *Store) RecentCycles(ctx context.Context, now time.Time, limit int) ([]Cycle, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+cycleColumns+`
    FROM evaluation_cycles
    WHERE (start_date <= $1 AND end_date >= $1) OR end_date < $1
    ORDER BY start_date DESC
    LIMIT $2
  `, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Cycle
	for rows.Next() {
		var c Cycle
		if err := rows.Scan(&c.ID, &c.Name, &c.StartDate, &c.ReviewDate, &c.EndDate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
