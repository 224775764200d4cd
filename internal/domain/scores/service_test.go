package scores

import (
	"context"
	"errors"
	"testing"
	"time"

	"rpe/internal/domain/criteria"
	"rpe/internal/domain/cycles"
	"rpe/internal/domain/evaluations"
	"rpe/internal/domain/users"
	cryptoutil "rpe/internal/platform/crypto"
)

type fakeScoreStore struct {
	scores          []ScorePerCycle
	selfEvals       []SelfEvaluationRow
	assigned        []AssignedCriterion
	excludeReceived string
}

func (f *fakeScoreStore) ScoresByUser(_ context.Context, userID string) ([]ScorePerCycle, error) {
	var out []ScorePerCycle
	for _, sc := range f.scores {
		if sc.UserID == userID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeScoreStore) ScoreByUserAndCycle(_ context.Context, userID, cycleID string) (ScorePerCycle, error) {
	for _, sc := range f.scores {
		if sc.UserID == userID && sc.CycleID == cycleID {
			return sc, nil
		}
	}
	return ScorePerCycle{}, ErrScoreNotFound
}

func (f *fakeScoreStore) ScoresForCycle(_ context.Context, cycleID string) ([]ScorePerCycle, error) {
	var out []ScorePerCycle
	for _, sc := range f.scores {
		if sc.CycleID == cycleID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeScoreStore) CreateScore(_ context.Context, score ScorePerCycle) (ScorePerCycle, error) {
	for _, sc := range f.scores {
		if sc.UserID == score.UserID && sc.CycleID == score.CycleID {
			return ScorePerCycle{}, ErrDuplicateScore
		}
	}
	score.ID = "score-new"
	f.scores = append(f.scores, score)
	return score, nil
}

func (f *fakeScoreStore) UpdateScore(_ context.Context, scoreID string, patch ScorePatch) (ScorePerCycle, error) {
	for i, sc := range f.scores {
		if sc.ID != scoreID {
			continue
		}
		if patch.SelfScore != nil {
			sc.SelfScore = patch.SelfScore
		}
		if patch.LeaderScore != nil {
			sc.LeaderScore = patch.LeaderScore
		}
		if patch.FinalScore != nil {
			sc.FinalScore = patch.FinalScore
		}
		if patch.Feedback != nil {
			sc.Feedback = patch.Feedback
		}
		f.scores[i] = sc
		return sc, nil
	}
	return ScorePerCycle{}, ErrScoreNotFound
}

func (f *fakeScoreStore) CompletedSelfEvaluations(_ context.Context, userID string) ([]SelfEvaluationRow, error) {
	var out []SelfEvaluationRow
	for _, row := range f.selfEvals {
		if row.Evaluation.EvaluatedID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeScoreStore) CompletedSelfEvaluationsInCycle(_ context.Context, userID, cycleID string) ([]SelfEvaluationRow, error) {
	var out []SelfEvaluationRow
	for _, row := range f.selfEvals {
		if row.Evaluation.EvaluatedID == userID && row.Cycle.ID == cycleID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeScoreStore) AssignedCriteria(_ context.Context, _, excludeCategory string) ([]AssignedCriterion, error) {
	f.excludeReceived = excludeCategory
	return f.assigned, nil
}

type fakeCycleSource struct {
	cyclesList []cycles.Cycle
}

func (f *fakeCycleSource) ListCycles(_ context.Context) ([]cycles.Cycle, error) {
	return f.cyclesList, nil
}

func (f *fakeCycleSource) CurrentCycle(_ context.Context, now time.Time) (cycles.Cycle, error) {
	var best *cycles.Cycle
	for i, c := range f.cyclesList {
		if !c.StartDate.After(now) && !c.EndDate.Before(now) {
			if best == nil || c.StartDate.After(best.StartDate) {
				best = &f.cyclesList[i]
			}
		}
	}
	if best == nil {
		return cycles.Cycle{}, cycles.ErrNoCurrentCycle
	}
	return *best, nil
}

func (f *fakeCycleSource) LastClosedCycle(_ context.Context, now time.Time) (cycles.Cycle, error) {
	var best *cycles.Cycle
	for i, c := range f.cyclesList {
		if c.EndDate.Before(now) {
			if best == nil || c.EndDate.After(best.EndDate) {
				best = &f.cyclesList[i]
			}
		}
	}
	if best == nil {
		return cycles.Cycle{}, cycles.ErrCycleNotFound
	}
	return *best, nil
}

func (f *fakeCycleSource) RecentCycles(_ context.Context, _ time.Time, limit int) ([]cycles.Cycle, error) {
	if len(f.cyclesList) > limit {
		return f.cyclesList[:limit], nil
	}
	return f.cyclesList, nil
}

type fakeUserSource struct {
	usersByID map[string]users.User
}

func (f *fakeUserSource) GetUser(_ context.Context, userID string) (users.User, error) {
	u, ok := f.usersByID[userID]
	if !ok {
		return users.User{}, users.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserSource) ListUsers(_ context.Context) ([]users.User, error) {
	var out []users.User
	for _, u := range f.usersByID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserSource) DirectReports(_ context.Context, managerID string) ([]users.User, error) {
	var out []users.User
	for _, u := range f.usersByID {
		if u.ManagerID == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func newTestService(store *fakeScoreStore, cycleSource *fakeCycleSource, userSource *fakeUserSource) *Service {
	crypto, err := cryptoutil.New("")
	if err != nil {
		panic(err)
	}
	return NewService(store, cycleSource, userSource, crypto)
}

func twoCycles() []cycles.Cycle {
	return []cycles.Cycle{
		{ID: "cyc-1", Name: "2024.1", StartDate: date(2024, 1, 1), ReviewDate: date(2024, 6, 1), EndDate: date(2024, 6, 30)},
		{ID: "cyc-2", Name: "2024.2", StartDate: date(2024, 7, 1), ReviewDate: date(2024, 12, 1), EndDate: date(2024, 12, 31)},
	}
}

func TestTimelineCoversEveryCycle(t *testing.T) {
	store := &fakeScoreStore{
		scores: []ScorePerCycle{
			{ID: "s1", UserID: "user-1", CycleID: "cyc-1", SelfScore: f64(4), FinalScore: f64(4.2), PeerScores: []float64{3, 5}},
		},
	}
	svc := newTestService(store, &fakeCycleSource{cyclesList: twoCycles()}, &fakeUserSource{})

	timeline, err := svc.TimelineByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("expected one row per cycle, got %d", len(timeline))
	}
	if timeline[0].CycleID != "cyc-1" || timeline[1].CycleID != "cyc-2" {
		t.Fatalf("timeline must follow cycle enumeration order: %+v", timeline)
	}
	if timeline[0].SelfScore == nil || *timeline[0].SelfScore != 4 {
		t.Fatalf("expected self score 4, got %v", timeline[0].SelfScore)
	}
	if len(timeline[0].PeerScores) != 2 || timeline[0].PeerScores[0] != 3 {
		t.Fatalf("peer scores must keep insertion order, got %v", timeline[0].PeerScores)
	}
	if timeline[1].SelfScore != nil || timeline[1].FinalScore != nil {
		t.Fatalf("cycle without score must keep null fields: %+v", timeline[1])
	}
	if timeline[1].PeerScores == nil || len(timeline[1].PeerScores) != 0 {
		t.Fatalf("cycle without score must carry an empty peer list, got %v", timeline[1].PeerScores)
	}
}

func TestTimelineForUserWithNoScores(t *testing.T) {
	svc := newTestService(&fakeScoreStore{}, &fakeCycleSource{cyclesList: twoCycles()}, &fakeUserSource{})

	timeline, err := svc.TimelineByUser(context.Background(), "user-without-scores")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("expected one row per cycle even with zero scores, got %d", len(timeline))
	}
	for _, entry := range timeline {
		if entry.SelfScore != nil || entry.LeaderScore != nil || entry.FinalScore != nil || entry.Feedback != nil {
			t.Fatalf("expected null score fields, got %+v", entry)
		}
		if len(entry.PeerScores) != 0 {
			t.Fatalf("expected empty peer list, got %v", entry.PeerScores)
		}
	}
}

func selfEvalRow(evalID string, cycle cycles.Cycle, createdAt time.Time) SelfEvaluationRow {
	return SelfEvaluationRow{
		Evaluation: evaluations.Evaluation{
			ID: evalID, Type: evaluations.TypeSelf, CycleID: cycle.ID,
			EvaluatedID: "user-1", Completed: true, CreatedAt: createdAt,
		},
		Cycle:         cycle,
		EvaluatedName: "Ana Souza",
		PositionName:  "Dev Backend",
		Answers: []AnswerRow{
			{CriterionTitle: "Entregar com qualidade", CriterionCategory: criteria.CategoryExecution, Score: 4, Justification: "entregas consistentes"},
		},
	}
}

func TestEvolutionsOrderAndGrouping(t *testing.T) {
	cycleList := twoCycles()
	// Rows arrive from the store ordered by cycle end date descending.
	store := &fakeScoreStore{
		selfEvals: []SelfEvaluationRow{
			selfEvalRow("eval-b1", cycleList[1], date(2024, 12, 10)),
			selfEvalRow("eval-b2", cycleList[1], date(2024, 12, 12)),
			selfEvalRow("eval-a", cycleList[0], date(2024, 6, 10)),
		},
		scores: []ScorePerCycle{
			{ID: "s2", UserID: "user-1", CycleID: "cyc-2", SelfScore: f64(4.5), PeerScores: []float64{4, 4.5}},
		},
	}
	svc := newTestService(store, &fakeCycleSource{cyclesList: cycleList}, &fakeUserSource{})

	groups, err := svc.EvolutionsByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 cycle groups, got %d", len(groups))
	}
	if groups[0].CycleID != "cyc-2" || groups[1].CycleID != "cyc-1" {
		t.Fatalf("most recent cycle must come first: %s, %s", groups[0].CycleID, groups[1].CycleID)
	}
	if groups[0].EndDate != date(2024, 12, 31) {
		t.Fatalf("unexpected end date in first bucket: %v", groups[0].EndDate)
	}
	if len(groups[0].Evaluations) != 2 {
		t.Fatalf("expected 2 evaluations in the recent bucket, got %d", len(groups[0].Evaluations))
	}
	if groups[0].ScorePerCycle == nil || *groups[0].ScorePerCycle.SelfScore != 4.5 {
		t.Fatalf("expected score projection on the recent bucket: %+v", groups[0].ScorePerCycle)
	}
	if groups[1].ScorePerCycle != nil {
		t.Fatalf("cycle without score row must carry a nil projection: %+v", groups[1].ScorePerCycle)
	}
	answer := groups[0].Evaluations[0].Answers[0]
	if answer.Criterion != "Entregar com qualidade" || answer.Category != criteria.CategoryExecution {
		t.Fatalf("answer must carry criterion title and category: %+v", answer)
	}
}

func TestEvolutionsEmptyWhenNoSelfEvaluations(t *testing.T) {
	svc := newTestService(&fakeScoreStore{}, &fakeCycleSource{cyclesList: twoCycles()}, &fakeUserSource{})

	groups, err := svc.EvolutionsByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("no self-evaluations is not an error: %v", err)
	}
	if groups == nil || len(groups) != 0 {
		t.Fatalf("expected empty list, got %v", groups)
	}
}

func TestCurrentSelfReviewFallbackShape(t *testing.T) {
	cycleList := twoCycles()
	store := &fakeScoreStore{
		assigned: []AssignedCriterion{
			{ID: "crit-1", Title: "Entregar com qualidade", Category: criteria.CategoryExecution},
			{ID: "crit-2", Title: "Sentimento de Dono", Category: criteria.CategoryBehavior},
		},
	}
	userSource := &fakeUserSource{usersByID: map[string]users.User{
		"user-1": {ID: "user-1", Name: "Ana", PositionID: "pos-dev"},
	}}
	svc := newTestService(store, &fakeCycleSource{cyclesList: cycleList}, userSource)
	svc.now = func() time.Time { return date(2024, 8, 15) }

	result, err := svc.CurrentSelfReview(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("missing self-review is not an error: %v", err)
	}
	if result.Fallback == nil {
		t.Fatal("expected the fallback shape")
	}
	if len(result.Evaluations) != 0 {
		t.Fatalf("fallback result must not carry evaluations: %+v", result.Evaluations)
	}
	if result.Fallback.Message != FallbackMessage {
		t.Fatalf("unexpected fallback message: %q", result.Fallback.Message)
	}
	if len(result.Fallback.AssignedCriteria) != 2 {
		t.Fatalf("expected the assigned criteria list, got %d", len(result.Fallback.AssignedCriteria))
	}
	if store.excludeReceived != criteria.CategoryImported {
		t.Fatalf("imported criteria must be excluded from the fallback, got %q", store.excludeReceived)
	}
}

func TestCurrentSelfReviewReturnsCompletedEvaluations(t *testing.T) {
	cycleList := twoCycles()
	store := &fakeScoreStore{
		selfEvals: []SelfEvaluationRow{selfEvalRow("eval-cur", cycleList[1], date(2024, 8, 1))},
	}
	svc := newTestService(store, &fakeCycleSource{cyclesList: cycleList}, &fakeUserSource{})
	svc.now = func() time.Time { return date(2024, 8, 15) }

	result, err := svc.CurrentSelfReview(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fallback != nil {
		t.Fatalf("expected evaluations, got fallback: %+v", result.Fallback)
	}
	if len(result.Evaluations) != 1 || result.Evaluations[0].EvaluationID != "eval-cur" {
		t.Fatalf("unexpected evaluations: %+v", result.Evaluations)
	}
}

func TestCurrentSelfReviewWithoutCurrentCycle(t *testing.T) {
	svc := newTestService(&fakeScoreStore{}, &fakeCycleSource{cyclesList: twoCycles()}, &fakeUserSource{})
	svc.now = func() time.Time { return date(2026, 1, 1) }

	_, err := svc.CurrentSelfReview(context.Background(), "user-1")
	if !errors.Is(err, cycles.ErrNoCurrentCycle) {
		t.Fatalf("expected ErrNoCurrentCycle, got %v", err)
	}
}

func TestCurrentSelfReviewUnknownUser(t *testing.T) {
	svc := newTestService(&fakeScoreStore{}, &fakeCycleSource{cyclesList: twoCycles()}, &fakeUserSource{usersByID: map[string]users.User{}})
	svc.now = func() time.Time { return date(2024, 8, 15) }

	_, err := svc.CurrentSelfReview(context.Background(), "ghost")
	if !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDecryptionBoundary(t *testing.T) {
	crypto, err := cryptoutil.New("0000000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sealedFeedback, err := crypto.EncryptField("continue assim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sealedName, err := crypto.EncryptField("Ana Souza")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cycleList := twoCycles()
	row := selfEvalRow("eval-enc", cycleList[1], date(2024, 12, 10))
	row.EvaluatedName = sealedName
	store := &fakeScoreStore{
		selfEvals: []SelfEvaluationRow{row},
		scores: []ScorePerCycle{
			{ID: "s1", UserID: "user-1", CycleID: "cyc-2", Feedback: str(sealedFeedback)},
		},
	}
	svc := NewService(store, &fakeCycleSource{cyclesList: cycleList}, &fakeUserSource{}, crypto)

	groups, err := svc.EvolutionsByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if groups[0].Evaluations[0].EvaluatedUser.Name != "Ana Souza" {
		t.Fatalf("name must be decrypted on the way out: %q", groups[0].Evaluations[0].EvaluatedUser.Name)
	}
	if groups[0].ScorePerCycle == nil || groups[0].ScorePerCycle.Feedback == nil || *groups[0].ScorePerCycle.Feedback != "continue assim" {
		t.Fatalf("feedback must be decrypted on the way out: %+v", groups[0].ScorePerCycle)
	}
}
