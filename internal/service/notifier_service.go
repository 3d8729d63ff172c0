package service

import (
	"context"

	"antigravity-pm/internal/logging"
	"antigravity-pm/internal/model"
	"antigravity-pm/internal/repository"
)

// NotifierService writes in-app notifications and computes their audiences.
type NotifierService struct {
	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
}

func NewNotifierService(userRepo *repository.UserRepository, notificationRepo *repository.NotificationRepository) *NotifierService {
	return &NotifierService{userRepo: userRepo, notificationRepo: notificationRepo}
}

// Notify inserts one notification row per recipient. It never returns an
// error: a failed insert is logged and swallowed so a notification problem
// cannot abort the caller's pass.
func (s *NotifierService) Notify(ctx context.Context, recipientIDs []string, title, message, link string) {
	if len(recipientIDs) == 0 {
		return
	}

	notifications := make([]model.Notification, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		notifications = append(notifications, model.Notification{
			UserID:  id,
			Title:   title,
			Message: message,
			Link:    link,
		})
	}

	if err := s.notificationRepo.InsertBatch(ctx, notifications); err != nil {
		logging.Logger.Errorf("notify %q: %v", title, err)
	}
}

// Broadcast sends a notification to every user in the workspace.
func (s *NotifierService) Broadcast(ctx context.Context, title, message, link string) {
	ids, err := s.userRepo.ListIDsByRole(ctx, "")
	if err != nil {
		logging.Logger.Errorf("broadcast %q: list users: %v", title, err)
		return
	}
	s.Notify(ctx, ids, title, message, link)
}

// ResolveAudience computes the recipient set for a notification raised by
// the given actor. Admin actors broadcast to every user; everyone else
// reaches all admins plus themselves. Recomputed fresh on every call so the
// current admin roster applies.
func (s *NotifierService) ResolveAudience(ctx context.Context, actorID, actorRole string) ([]string, error) {
	if actorRole == model.RoleAdmin {
		return s.userRepo.ListIDsByRole(ctx, "")
	}

	ids, err := s.userRepo.ListIDsByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id == actorID {
			return ids, nil
		}
	}
	return append(ids, actorID), nil
}
