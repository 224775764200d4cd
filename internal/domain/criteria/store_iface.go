package criteria

import (
	"context"

	"rpe/internal/domain/evaluations"
)

type StoreAPI interface {
	ListCriteria(ctx context.Context) ([]Criterion, error)
	GetCriterion(ctx context.Context, criterionID string) (Criterion, error)
	CriterionByTitle(ctx context.Context, title string) (Criterion, error)
	CreateCriterion(ctx context.Context, title, description, category string) (Criterion, error)
	DeleteCriterion(ctx context.Context, criterionID string) error
	ListAssignments(ctx context.Context, positionID string) ([]Assignment, error)
	AssignmentExists(ctx context.Context, criterionID, positionID string) (bool, error)
	CreateAssignment(ctx context.Context, criterionID, positionID string, isRequired bool) (Assignment, error)
	DeleteAssignment(ctx context.Context, assignmentID string) error
}

// MigrationStore is the slice of storage the migration engine needs. The
// engine's existence checks run outside MigrateAnswer; the three writes per
// answer run inside it as one transaction.
type MigrationStore interface {
	CriterionByTitle(ctx context.Context, title string) (Criterion, error)
	CreateCriterion(ctx context.Context, title, description, category string) (Criterion, error)
	AnswersByCriterion(ctx context.Context, criterionID string) ([]evaluations.Answer, error)
	AnswerExists(ctx context.Context, evaluationID, criterionID string) (bool, error)
	EvaluatedPositionID(ctx context.Context, evaluationID string) (string, error)
	AssignmentExists(ctx context.Context, criterionID, positionID string) (bool, error)
	MigrateAnswer(ctx context.Context, old evaluations.Answer, newCriterionID, positionID string, createAssignment bool) error
}
