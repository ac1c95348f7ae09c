package mocks

import (
	"context"
	"time"

	model "noders-content-service/internal/domain/models"

	"github.com/stretchr/testify/mock"
)

// ProfileCache is a mock type for the ProfileCache type
type ProfileCache struct {
	mock.Mock
}

func (_m *ProfileCache) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	ret := _m.Called(ctx, userID)

	var r0 *model.Profile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Profile)
	}
	return r0, ret.Error(1)
}

func (_m *ProfileCache) SetProfile(ctx context.Context, profile *model.Profile, ttl time.Duration) error {
	ret := _m.Called(ctx, profile, ttl)
	return ret.Error(0)
}

func (_m *ProfileCache) DeleteProfile(ctx context.Context, userID string) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

// NewProfileCache creates a new instance of ProfileCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewProfileCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProfileCache {
	m := &ProfileCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
