package mocks

import (
	"context"

	model "noders-content-service/internal/domain/models"

	"github.com/stretchr/testify/mock"
)

// Service is a mock type for the profile Service type
type Service struct {
	mock.Mock
}

func (_m *Service) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	ret := _m.Called(ctx, userID)

	var r0 *model.Profile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Profile)
	}
	return r0, ret.Error(1)
}

func (_m *Service) EnsureProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	ret := _m.Called(ctx, profile)

	var r0 *model.Profile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Profile)
	}
	return r0, ret.Error(1)
}

func (_m *Service) UpdateRole(ctx context.Context, userID string, role model.Role) (*model.Profile, error) {
	ret := _m.Called(ctx, userID, role)

	var r0 *model.Profile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Profile)
	}
	return r0, ret.Error(1)
}

// NewService creates a new instance of Service. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewService(t interface {
	mock.TestingT
	Cleanup(func())
}) *Service {
	m := &Service{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
