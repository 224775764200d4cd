package notifications

import "context"

const defaultListLimit = 50

type Service struct {
	store StoreAPI
}

func New(store StoreAPI) *Service {
	return &Service{store: store}
}

// Notify persists a notification for the user. Priority defaults to NORMAL
// when the caller leaves it empty.
func (s *Service) Notify(ctx context.Context, userID, ntype, title, message, priority string) (Notification, error) {
	if priority == "" {
		priority = PriorityNormal
	}
	return s.store.CreateNotification(ctx, Notification{
		UserID:   userID,
		Type:     ntype,
		Title:    title,
		Message:  message,
		Priority: priority,
	})
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Notification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	out, err := s.store.ListNotifications(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Notification{}
	}
	return out, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.MarkAllRead(ctx, userID)
}
