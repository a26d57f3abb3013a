package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PrivilegeProvider struct {
	mock.Mock
}

func (m *PrivilegeProvider) HasElevatedPrivilege(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
