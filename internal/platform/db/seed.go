package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"rpe/internal/domain/auth"
	"rpe/internal/domain/criteria"
	"rpe/internal/domain/users"
	"rpe/internal/platform/config"
	cryptoutil "rpe/internal/platform/crypto"
)

var seedPositions = []struct {
	Name  string
	Track string
}{
	{"Dev Backend", "TECH"},
	{"Dev Frontend", "TECH"},
	{"QA", "TECH"},
	{"Product Manager", "BUSINESS"},
	{"People Analyst", "BUSINESS"},
}

// Seed is idempotent: every step checks before inserting, so running it on
// every boot is safe.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, crypto *cryptoutil.Service) error {
	if err := ensurePositions(ctx, pool); err != nil {
		return err
	}
	if err := ensureCriteria(ctx, pool); err != nil {
		return err
	}
	if err := ensureCycles(ctx, pool); err != nil {
		return err
	}
	if cfg.SeedAdminEmail != "" {
		if err := ensureAdminUser(ctx, pool, crypto, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}
	return nil
}

func ensurePositions(ctx context.Context, pool *pgxpool.Pool) error {
	for _, pos := range seedPositions {
		var id string
		err := pool.QueryRow(ctx, "SELECT id FROM positions WHERE name = $1", pos.Name).Scan(&id)
		if err == nil {
			continue
		}
		if _, err := pool.Exec(ctx, "INSERT INTO positions (name, track) VALUES ($1, $2)", pos.Name, pos.Track); err != nil {
			return err
		}
	}
	return nil
}

func ensureCriteria(ctx context.Context, pool *pgxpool.Pool) error {
	for title, category := range criteria.DefaultCatalog() {
		var id string
		err := pool.QueryRow(ctx, "SELECT id FROM evaluation_criteria WHERE title = $1", title).Scan(&id)
		if err == nil {
			continue
		}
		if _, err := pool.Exec(ctx, `
      INSERT INTO evaluation_criteria (title, description, category)
      VALUES ($1, '', $2)
    `, title, category); err != nil {
			return err
		}
	}
	return nil
}

func ensureCycles(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM evaluation_cycles").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	year := time.Now().UTC().Year()
	cycles := []struct {
		Name   string
		Start  time.Time
		Review time.Time
		End    time.Time
	}{
		{
			Name:   fmt.Sprintf("%d.1", year),
			Start:  time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			Review: time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC),
			End:    time.Date(year, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:   fmt.Sprintf("%d.2", year),
			Start:  time.Date(year, 7, 1, 0, 0, 0, 0, time.UTC),
			Review: time.Date(year, 12, 1, 0, 0, 0, 0, time.UTC),
			End:    time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, cycle := range cycles {
		if _, err := pool.Exec(ctx, `
      INSERT INTO evaluation_cycles (name, start_date, review_date, end_date)
      VALUES ($1, $2, $3, $4)
    `, cycle.Name, cycle.Start, cycle.Review, cycle.End); err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, crypto *cryptoutil.Service, email, password string) error {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	name, err := crypto.EncryptField("Admin")
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (name, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
  `, name, email, hash, users.RoleHR)
	return err
}
