package criteria

import "context"

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Criterion, error) {
	return s.store.ListCriteria(ctx)
}

func (s *Service) Get(ctx context.Context, criterionID string) (Criterion, error) {
	return s.store.GetCriterion(ctx, criterionID)
}

func (s *Service) Create(ctx context.Context, title, description, category string) (Criterion, error) {
	return s.store.CreateCriterion(ctx, title, description, category)
}

func (s *Service) Delete(ctx context.Context, criterionID string) error {
	return s.store.DeleteCriterion(ctx, criterionID)
}

func (s *Service) ListAssignments(ctx context.Context, positionID string) ([]Assignment, error) {
	return s.store.ListAssignments(ctx, positionID)
}

// Assign checks the (criterion, position) pair before inserting so the unique
// pair invariant surfaces as a domain error instead of a constraint violation.
func (s *Service) Assign(ctx context.Context, criterionID, positionID string, isRequired bool) (Assignment, error) {
	if _, err := s.store.GetCriterion(ctx, criterionID); err != nil {
		return Assignment{}, err
	}
	exists, err := s.store.AssignmentExists(ctx, criterionID, positionID)
	if err != nil {
		return Assignment{}, err
	}
	if exists {
		return Assignment{}, ErrDuplicateAssignment
	}
	return s.store.CreateAssignment(ctx, criterionID, positionID, isRequired)
}

func (s *Service) Unassign(ctx context.Context, assignmentID string) error {
	return s.store.DeleteAssignment(ctx, assignmentID)
}
