package mocks

import (
	"context"

	block_repository "noders-content-service/internal/domain/ports/output/block"
	image_repository "noders-content-service/internal/domain/ports/output/image"
	post_repository "noders-content-service/internal/domain/ports/output/post"

	"github.com/stretchr/testify/mock"
)

// Transaction is a mock type for the Transaction type
type Transaction struct {
	mock.Mock
}

func (_m *Transaction) PostRepository() post_repository.Repository {
	ret := _m.Called()

	var r0 post_repository.Repository
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(post_repository.Repository)
	}
	return r0
}

func (_m *Transaction) BlockRepository() block_repository.Repository {
	ret := _m.Called()

	var r0 block_repository.Repository
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(block_repository.Repository)
	}
	return r0
}

func (_m *Transaction) ImageRepository() image_repository.Repository {
	ret := _m.Called()

	var r0 image_repository.Repository
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(image_repository.Repository)
	}
	return r0
}

func (_m *Transaction) Commit(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_m *Transaction) Rollback(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// NewTransaction creates a new instance of Transaction. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTransaction(t interface {
	mock.TestingT
	Cleanup(func())
}) *Transaction {
	m := &Transaction{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
