package services

import (
	"context"
	"fmt"

	"github.com/Zhanerrke588595/it-events/internal/client/client"
	"github.com/Zhanerrke588595/it-events/internal/client/models"
	"github.com/Zhanerrke588595/it-events/internal/client/store"
	"github.com/Zhanerrke588595/it-events/internal/logging"
)

// AdminService covers account moderation. Every call requires an admin
// session.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	VerifyUser(ctx context.Context, id string) (*models.User, error)
}

type adminService struct {
	client client.Client
	store  *store.Store
	log    logging.Logger
}

func NewAdminService(c client.Client, st *store.Store, log logging.Logger) AdminService {
	return &adminService{client: c, store: st, log: log}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	if _, err := requireAdmin(s.store); err != nil {
		return nil, err
	}
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// VerifyUser marks the account verified so its events skip moderation.
func (s *adminService) VerifyUser(ctx context.Context, id string) (*models.User, error) {
	if _, err := requireAdmin(s.store); err != nil {
		return nil, err
	}
	u, err := s.client.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	if u.IsVerified {
		return u, nil
	}

	next := *u
	next.IsVerified = true
	saved, err := s.client.UpdateUser(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("verify user %s: %w", id, err)
	}
	s.log.Info(ctx, "user verified", "user_id", id)
	return saved, nil
}
