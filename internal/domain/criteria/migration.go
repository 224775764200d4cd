package criteria

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Migrator retires old evaluation criteria and re-points their historical
// answers at renamed successors. Runs are idempotent: every mutation is
// guarded by an existence check, so a partial run can be repeated safely.
// Concurrent runs are not supported; the engine assumes a single writer.
type Migrator struct {
	store   MigrationStore
	catalog map[string]string
}

// NewMigrator builds an engine over the given store. catalog maps successor
// titles to categories; titles outside it fall back to CategoryImported.
func NewMigrator(store MigrationStore, catalog map[string]string) *Migrator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Migrator{store: store, catalog: catalog}
}

type PairResult struct {
	OldTitle         string `json:"oldTitle"`
	NewTitle         string `json:"newTitle"`
	Migrated         int    `json:"migrated"`
	Skipped          int    `json:"skipped"`
	CreatedCriterion bool   `json:"createdCriterion"`
}

type Report struct {
	Pairs    []PairResult `json:"pairs"`
	Warnings []string     `json:"warnings"`
}

func (r *Report) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	slog.Warn(msg)
}

// Run processes every old-title -> new-title pair. An unresolvable old
// criterion and an already-migrated answer are reported and skipped; store
// failures abort the run with the partial report.
func (m *Migrator) Run(ctx context.Context, mapping map[string]string) (Report, error) {
	var report Report

	oldTitles := make([]string, 0, len(mapping))
	for oldTitle := range mapping {
		oldTitles = append(oldTitles, oldTitle)
	}
	sort.Strings(oldTitles)

	for _, rawOld := range oldTitles {
		oldTitle := strings.TrimSpace(rawOld)
		newTitle := strings.TrimSpace(mapping[rawOld])
		if oldTitle == "" || newTitle == "" {
			report.warnf("migration pair with empty title skipped: %q -> %q", rawOld, mapping[rawOld])
			continue
		}

		result, err := m.migratePair(ctx, &report, oldTitle, newTitle)
		if err != nil {
			return report, err
		}
		if result != nil {
			report.Pairs = append(report.Pairs, *result)
		}
	}

	return report, nil
}

func (m *Migrator) migratePair(ctx context.Context, report *Report, oldTitle, newTitle string) (*PairResult, error) {
	oldCriterion, err := m.store.CriterionByTitle(ctx, oldTitle)
	if errors.Is(err, ErrCriterionNotFound) {
		report.warnf("old criterion not found: %q", oldTitle)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	result := PairResult{OldTitle: oldTitle, NewTitle: newTitle}

	newCriterion, err := m.store.CriterionByTitle(ctx, newTitle)
	if errors.Is(err, ErrCriterionNotFound) {
		category, ok := m.catalog[newTitle]
		if !ok {
			category = CategoryImported
		}
		description := fmt.Sprintf("Created automatically from %q", oldTitle)
		newCriterion, err = m.store.CreateCriterion(ctx, newTitle, description, category)
		if err != nil {
			return nil, err
		}
		result.CreatedCriterion = true
		slog.Info("created successor criterion", "title", newTitle, "category", category)
	} else if err != nil {
		return nil, err
	}

	answers, err := m.store.AnswersByCriterion(ctx, oldCriterion.ID)
	if err != nil {
		return nil, err
	}
	slog.Info("answers found for retired criterion", "title", oldTitle, "count", len(answers))

	for _, answer := range answers {
		exists, err := m.store.AnswerExists(ctx, answer.EvaluationID, newCriterion.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			// The old answer stays in place so no score is lost when the
			// collaborator was already evaluated on both criteria.
			report.warnf("answer already exists for evaluation %s and criterion %q, skipping", answer.EvaluationID, newTitle)
			result.Skipped++
			continue
		}

		positionID, err := m.store.EvaluatedPositionID(ctx, answer.EvaluationID)
		if err != nil {
			return nil, err
		}

		createAssignment := false
		if positionID != "" {
			assigned, err := m.store.AssignmentExists(ctx, newCriterion.ID, positionID)
			if err != nil {
				return nil, err
			}
			createAssignment = !assigned
		}

		if err := m.store.MigrateAnswer(ctx, answer, newCriterion.ID, positionID, createAssignment); err != nil {
			return nil, err
		}
		result.Migrated++
	}

	slog.Info("migration pair done", "old", oldTitle, "new", newTitle, "migrated", result.Migrated, "skipped", result.Skipped)
	return &result, nil
}
