package mocks

import (
	"context"

	"noders-content-service/internal/infrastructure/outbound/repository/postgres"

	"github.com/stretchr/testify/mock"
)

// UnitOfWork is a mock type for the UnitOfWork type
type UnitOfWork struct {
	mock.Mock
}

func (_m *UnitOfWork) Begin(ctx context.Context) (postgres.Transaction, error) {
	ret := _m.Called(ctx)

	var r0 postgres.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(postgres.Transaction)
	}
	return r0, ret.Error(1)
}

// NewUnitOfWork creates a new instance of UnitOfWork. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *UnitOfWork {
	m := &UnitOfWork{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
