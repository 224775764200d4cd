package scores

import (
	"context"
	"errors"
	"time"

	"rpe/internal/domain/criteria"
	"rpe/internal/domain/cycles"
	cryptoutil "rpe/internal/platform/crypto"
)

// FallbackMessage is returned by CurrentSelfReview when the user has no
// completed self-review in the current cycle.
const FallbackMessage = "no self-review recorded for the current cycle"

// Service builds per-user score timelines and self-review histories. All
// sensitive fields are decrypted exactly once, right before a record leaves
// the service.
type Service struct {
	store  StoreAPI
	cycles CycleSource
	users  UserSource
	crypto *cryptoutil.Service
	now    func() time.Time
}

func NewService(store StoreAPI, cycleSource CycleSource, userSource UserSource, crypto *cryptoutil.Service) *Service {
	return &Service{
		store:  store,
		cycles: cycleSource,
		users:  userSource,
		crypto: crypto,
		now:    time.Now,
	}
}

// TimelineByUser merges every cycle with the user's score rows. The result
// always has one entry per cycle, in the store's cycle order; cycles without
// a score keep null score fields and an empty peer list.
func (s *Service) TimelineByUser(ctx context.Context, userID string) ([]CycleScore, error) {
	allCycles, err := s.cycles.ListCycles(ctx)
	if err != nil {
		return nil, err
	}
	scoreRows, err := s.store.ScoresByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byCycle := make(map[string]ScorePerCycle, len(scoreRows))
	for _, row := range scoreRows {
		byCycle[row.CycleID] = row
	}

	timeline := make([]CycleScore, 0, len(allCycles))
	for _, cycle := range allCycles {
		entry := CycleScore{
			CycleID:    cycle.ID,
			Name:       cycle.Name,
			StartDate:  cycle.StartDate,
			ReviewDate: cycle.ReviewDate,
			EndDate:    cycle.EndDate,
			PeerScores: []float64{},
		}
		if row, ok := byCycle[cycle.ID]; ok {
			row, err = s.decryptScore(row)
			if err != nil {
				return nil, err
			}
			entry.SelfScore = row.SelfScore
			entry.LeaderScore = row.LeaderScore
			entry.FinalScore = row.FinalScore
			entry.Feedback = row.Feedback
			entry.PeerScores = row.PeerScores
		}
		timeline = append(timeline, entry)
	}
	return timeline, nil
}

// EvolutionsByUser groups the user's completed self-evaluations into
// per-cycle buckets, most recent cycle first. Returns an empty list when the
// user has none.
func (s *Service) EvolutionsByUser(ctx context.Context, userID string) ([]CycleGroup, error) {
	evalRows, err := s.store.CompletedSelfEvaluations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(evalRows) == 0 {
		return []CycleGroup{}, nil
	}

	scoreRows, err := s.store.ScoresByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	scoresByCycle := make(map[string]ScorePerCycle, len(scoreRows))
	for _, row := range scoreRows {
		scoresByCycle[row.CycleID] = row
	}

	var groups []CycleGroup
	index := make(map[string]int)
	for _, row := range evalRows {
		pos, seen := index[row.Cycle.ID]
		if !seen {
			group := CycleGroup{
				CycleID:    row.Cycle.ID,
				CycleName:  row.Cycle.Name,
				StartDate:  row.Cycle.StartDate,
				ReviewDate: row.Cycle.ReviewDate,
				EndDate:    row.Cycle.EndDate,
			}
			if score, ok := scoresByCycle[row.Cycle.ID]; ok {
				score, err = s.decryptScore(score)
				if err != nil {
					return nil, err
				}
				group.ScorePerCycle = &ScoreProjection{
					SelfScore:   score.SelfScore,
					PeerScores:  score.PeerScores,
					LeaderScore: score.LeaderScore,
					FinalScore:  score.FinalScore,
					Feedback:    score.Feedback,
				}
			}
			groups = append(groups, group)
			pos = len(groups) - 1
			index[row.Cycle.ID] = pos
		}

		view, err := s.evaluationView(row)
		if err != nil {
			return nil, err
		}
		groups[pos].Evaluations = append(groups[pos].Evaluations, view)
	}
	return groups, nil
}

// CurrentSelfReview returns the user's completed self-review for the current
// cycle, or the criteria assigned to their position when none exists yet.
// Fails with cycles.ErrNoCurrentCycle when no cycle is open.
func (s *Service) CurrentSelfReview(ctx context.Context, userID string) (CurrentSelfReviewResult, error) {
	currentCycle, err := s.cycles.CurrentCycle(ctx, s.now())
	if err != nil {
		return CurrentSelfReviewResult{}, err
	}

	evalRows, err := s.store.CompletedSelfEvaluationsInCycle(ctx, userID, currentCycle.ID)
	if err != nil {
		return CurrentSelfReviewResult{}, err
	}
	if len(evalRows) > 0 {
		views := make([]EvaluationView, 0, len(evalRows))
		for _, row := range evalRows {
			view, err := s.evaluationView(row)
			if err != nil {
				return CurrentSelfReviewResult{}, err
			}
			views = append(views, view)
		}
		return CurrentSelfReviewResult{Evaluations: views}, nil
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return CurrentSelfReviewResult{}, err
	}

	assigned := []AssignedCriterion{}
	if user.PositionID != "" {
		assigned, err = s.store.AssignedCriteria(ctx, user.PositionID, criteria.CategoryImported)
		if err != nil {
			return CurrentSelfReviewResult{}, err
		}
		if assigned == nil {
			assigned = []AssignedCriterion{}
		}
	}
	return CurrentSelfReviewResult{
		Fallback: &SelfReviewFallback{Message: FallbackMessage, AssignedCriteria: assigned},
	}, nil
}

// OverviewCurrentCycle is the company-wide score snapshot for the current
// cycle, falling back to the most recently closed one.
func (s *Service) OverviewCurrentCycle(ctx context.Context) (CycleOverview, error) {
	now := s.now()
	cycle, err := s.cycles.CurrentCycle(ctx, now)
	if errors.Is(err, cycles.ErrNoCurrentCycle) {
		cycle, err = s.cycles.LastClosedCycle(ctx, now)
		if errors.Is(err, cycles.ErrCycleNotFound) {
			return CycleOverview{}, cycles.ErrNoCycles
		}
	}
	if err != nil {
		return CycleOverview{}, err
	}

	allUsers, err := s.users.ListUsers(ctx)
	if err != nil {
		return CycleOverview{}, err
	}
	scoreRows, err := s.store.ScoresForCycle(ctx, cycle.ID)
	if err != nil {
		return CycleOverview{}, err
	}
	byUser := make(map[string]ScorePerCycle, len(scoreRows))
	for _, row := range scoreRows {
		byUser[row.UserID] = row
	}

	overview := CycleOverview{Cycle: cycle, Users: make([]UserScores, 0, len(allUsers))}
	for _, user := range allUsers {
		entry, err := s.userScores(user.ID, user.Name, user.Role, user.ManagerID, user.MentorID, positionName(user), nil)
		if err != nil {
			return CycleOverview{}, err
		}
		if row, ok := byUser[user.ID]; ok {
			row, err = s.decryptScore(row)
			if err != nil {
				return CycleOverview{}, err
			}
			entry.ScoreRows = append(entry.ScoreRows, row)
		}
		overview.Users = append(overview.Users, entry)
	}
	return overview, nil
}

// TeamOverview lists a manager's direct reports with their score rows for
// the two most recent cycles.
func (s *Service) TeamOverview(ctx context.Context, managerID string) (TeamOverview, error) {
	if _, err := s.users.GetUser(ctx, managerID); err != nil {
		return TeamOverview{}, err
	}

	recent, err := s.cycles.RecentCycles(ctx, s.now(), 2)
	if err != nil {
		return TeamOverview{}, err
	}
	cycleIDs := make(map[string]bool, len(recent))
	for _, cycle := range recent {
		cycleIDs[cycle.ID] = true
	}

	reports, err := s.users.DirectReports(ctx, managerID)
	if err != nil {
		return TeamOverview{}, err
	}

	overview := TeamOverview{Cycles: recent, Users: make([]UserScores, 0, len(reports))}
	for _, report := range reports {
		entry, err := s.userScores(report.ID, report.Name, report.Role, report.ManagerID, report.MentorID, positionName(report), nil)
		if err != nil {
			return TeamOverview{}, err
		}
		scoreRows, err := s.store.ScoresByUser(ctx, report.ID)
		if err != nil {
			return TeamOverview{}, err
		}
		for _, row := range scoreRows {
			if !cycleIDs[row.CycleID] {
				continue
			}
			row, err = s.decryptScore(row)
			if err != nil {
				return TeamOverview{}, err
			}
			entry.ScoreRows = append(entry.ScoreRows, row)
		}
		overview.Users = append(overview.Users, entry)
	}
	return overview, nil
}

func (s *Service) ScoresByUser(ctx context.Context, userID string) ([]ScorePerCycle, error) {
	scoreRows, err := s.store.ScoresByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range scoreRows {
		if scoreRows[i], err = s.decryptScore(scoreRows[i]); err != nil {
			return nil, err
		}
	}
	return scoreRows, nil
}

// Create encrypts the feedback and persists the score row together with its
// ordered peer-score values.
func (s *Service) Create(ctx context.Context, score ScorePerCycle) (ScorePerCycle, error) {
	if score.Feedback != nil {
		sealed, err := s.crypto.EncryptField(*score.Feedback)
		if err != nil {
			return ScorePerCycle{}, err
		}
		score.Feedback = &sealed
	}
	created, err := s.store.CreateScore(ctx, score)
	if err != nil {
		return ScorePerCycle{}, err
	}
	return s.decryptScore(created)
}

func (s *Service) Update(ctx context.Context, scoreID string, patch ScorePatch) (ScorePerCycle, error) {
	if patch.Feedback != nil {
		sealed, err := s.crypto.EncryptField(*patch.Feedback)
		if err != nil {
			return ScorePerCycle{}, err
		}
		patch.Feedback = &sealed
	}
	updated, err := s.store.UpdateScore(ctx, scoreID, patch)
	if err != nil {
		return ScorePerCycle{}, err
	}
	return s.decryptScore(updated)
}
