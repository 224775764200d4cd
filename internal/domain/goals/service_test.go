package goals

import (
	"context"
	"errors"
	"testing"
	"time"

	"rpe/internal/domain/notifications"
	cryptoutil "rpe/internal/platform/crypto"
)

type fakeGoalStore struct {
	goals   map[string]Goal
	actions map[string]Action
	nextID  int
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{goals: map[string]Goal{}, actions: map[string]Action{}}
}

func (f *fakeGoalStore) id() string {
	f.nextID++
	return string(rune('a' + f.nextID - 1))
}

func (f *fakeGoalStore) GoalsByUser(_ context.Context, userID string) ([]Goal, error) {
	var out []Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalStore) GetGoal(_ context.Context, goalID string) (Goal, error) {
	g, ok := f.goals[goalID]
	if !ok {
		return Goal{}, ErrGoalNotFound
	}
	return g, nil
}

func (f *fakeGoalStore) CreateGoal(_ context.Context, goal Goal) (Goal, error) {
	goal.ID = f.id()
	goal.Actions = []Action{}
	f.goals[goal.ID] = goal
	return goal, nil
}

func (f *fakeGoalStore) DeleteGoal(_ context.Context, goalID string) error {
	if _, ok := f.goals[goalID]; !ok {
		return ErrGoalNotFound
	}
	delete(f.goals, goalID)
	return nil
}

func (f *fakeGoalStore) CreateAction(_ context.Context, action Action) (Action, error) {
	action.ID = f.id()
	f.actions[action.ID] = action
	return action, nil
}

func (f *fakeGoalStore) SetActionCompleted(_ context.Context, actionID string, completed bool) (Action, error) {
	a, ok := f.actions[actionID]
	if !ok {
		return Action{}, ErrActionNotFound
	}
	a.Completed = completed
	f.actions[actionID] = a
	return a, nil
}

func (f *fakeGoalStore) DeleteAction(_ context.Context, actionID string) error {
	if _, ok := f.actions[actionID]; !ok {
		return ErrActionNotFound
	}
	delete(f.actions, actionID)
	return nil
}

type fakeNotifier struct {
	sent []notifications.Notification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, userID, ntype, title, message, priority string) (notifications.Notification, error) {
	if f.err != nil {
		return notifications.Notification{}, f.err
	}
	n := notifications.Notification{UserID: userID, Type: ntype, Title: title, Message: message, Priority: priority}
	f.sent = append(f.sent, n)
	return n, nil
}

func newGoalService(t *testing.T, store StoreAPI, notifier Notifier) *Service {
	t.Helper()
	crypto, err := cryptoutil.New("0000000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := New(store, crypto, notifier, 7)
	svc.now = func() time.Time { return time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestAddActionNotifiesInsideDeadlineWindow(t *testing.T) {
	store := newFakeGoalStore()
	notifier := &fakeNotifier{}
	svc := newGoalService(t, store, notifier)

	goal, err := svc.Create(context.Background(), "user-1", "Aprender Go", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notifier.sent = nil // drop the goal-created notification

	_, err = svc.AddAction(context.Background(), goal.ID, "ler a documentação", time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected a deadline notification, got %d", len(notifier.sent))
	}
	sent := notifier.sent[0]
	if sent.Type != notifications.TypeGoalDeadlineApproaching {
		t.Fatalf("unexpected notification type %q", sent.Type)
	}
	if sent.Priority != notifications.PriorityHigh {
		t.Fatalf("unexpected priority %q", sent.Priority)
	}
	if sent.UserID != "user-1" {
		t.Fatalf("notification must target the goal owner, got %q", sent.UserID)
	}
}

func TestAddActionSkipsNotificationOutsideWindow(t *testing.T) {
	store := newFakeGoalStore()
	notifier := &fakeNotifier{}
	svc := newGoalService(t, store, notifier)

	goal, err := svc.Create(context.Background(), "user-1", "Aprender Go", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notifier.sent = nil

	_, err = svc.AddAction(context.Background(), goal.ID, "ler a documentação", time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("deadline far out must not notify, got %d", len(notifier.sent))
	}
}

func TestAddActionSkipsNotificationForPastDeadline(t *testing.T) {
	store := newFakeGoalStore()
	notifier := &fakeNotifier{}
	svc := newGoalService(t, store, notifier)

	goal, err := svc.Create(context.Background(), "user-1", "Aprender Go", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notifier.sent = nil

	_, err = svc.AddAction(context.Background(), goal.ID, "ler a documentação", time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("past deadline must not notify, got %d", len(notifier.sent))
	}
}

func TestAddActionSurvivesNotifierFailure(t *testing.T) {
	store := newFakeGoalStore()
	notifier := &fakeNotifier{err: errors.New("queue down")}
	svc := newGoalService(t, store, notifier)

	goal, err := svc.Create(context.Background(), "user-1", "Aprender Go", "", "")
	if err != nil {
		t.Fatalf("goal create must survive notifier failure: %v", err)
	}

	action, err := svc.AddAction(context.Background(), goal.ID, "ler a documentação", time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("action create must survive notifier failure: %v", err)
	}
	if action.Description != "ler a documentação" {
		t.Fatalf("description must come back decrypted, got %q", action.Description)
	}
}

func TestAddActionOnMissingGoal(t *testing.T) {
	svc := newGoalService(t, newFakeGoalStore(), &fakeNotifier{})

	_, err := svc.AddAction(context.Background(), "ghost", "qualquer", time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestGoalFieldsAreStoredEncrypted(t *testing.T) {
	store := newFakeGoalStore()
	svc := newGoalService(t, store, nil)

	goal, err := svc.Create(context.Background(), "user-1", "Aprender Go", "terminar o tour", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal.Title != "Aprender Go" {
		t.Fatalf("create must return the decrypted title, got %q", goal.Title)
	}
	stored := store.goals[goal.ID]
	if stored.Title == "Aprender Go" {
		t.Fatal("title must not be stored in plaintext")
	}

	fetched, err := svc.GetGoal(context.Background(), goal.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.Title != "Aprender Go" || fetched.Description != "terminar o tour" {
		t.Fatalf("read must decrypt stored fields: %+v", fetched)
	}
}
