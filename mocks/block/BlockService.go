package mocks

import (
	"context"

	model "noders-content-service/internal/domain/models"

	"github.com/stretchr/testify/mock"
)

// Service is a mock type for the block Service type
type Service struct {
	mock.Mock
}

func (_m *Service) ListBlocks(ctx context.Context, postID string) ([]model.Block, error) {
	ret := _m.Called(ctx, postID)

	var r0 []model.Block
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Block)
	}
	return r0, ret.Error(1)
}

func (_m *Service) CreateBlock(ctx context.Context, actor *model.Principal, block *model.CreateBlockDTO) (*model.Block, error) {
	ret := _m.Called(ctx, actor, block)

	var r0 *model.Block
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Block)
	}
	return r0, ret.Error(1)
}

func (_m *Service) UpdateBlock(ctx context.Context, actor *model.Principal, postID string, blockID string, update *model.UpdateBlockDTO) (*model.Block, error) {
	ret := _m.Called(ctx, actor, postID, blockID, update)

	var r0 *model.Block
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Block)
	}
	return r0, ret.Error(1)
}

func (_m *Service) DeleteBlock(ctx context.Context, actor *model.Principal, postID string, blockID string) error {
	ret := _m.Called(ctx, actor, postID, blockID)
	return ret.Error(0)
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
