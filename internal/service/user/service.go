package user

import (
	"context"

	"github.com/google/uuid"

	"foxbuy-watchdog/internal/domain"
	"foxbuy-watchdog/internal/repository"
)

// Service answers privilege questions about accounts. Answers are never
// cached; every call reads the current role.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	HasElevatedPrivilege(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) HasElevatedPrivilege(ctx context.Context, id uuid.UUID) (bool, error) {
	role, err := s.userRepo.GetRole(ctx, id)
	if err != nil {
		return false, err
	}
	u := domain.User{Role: role, IsActive: true}
	return u.IsElevated(), nil
}
