package mocks

import (
	"context"

	model "noders-content-service/internal/domain/models"

	"github.com/stretchr/testify/mock"
)

// Service is a mock type for the post Service type
type Service struct {
	mock.Mock
}

func (_m *Service) CreatePost(ctx context.Context, actor *model.Principal, post *model.CreatePostDTO) (*model.Post, error) {
	ret := _m.Called(ctx, actor, post)

	var r0 *model.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Post)
	}
	return r0, ret.Error(1)
}

func (_m *Service) GetPost(ctx context.Context, id string) (*model.PostDetailed, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.PostDetailed
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.PostDetailed)
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
