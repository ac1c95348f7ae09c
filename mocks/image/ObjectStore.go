package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// ObjectStore is a mock type for the ObjectStore type
type ObjectStore struct {
	mock.Mock
}

func (_m *ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ret := _m.Called(ctx, key, data, contentType)
	return ret.String(0), ret.Error(1)
}

func (_m *ObjectStore) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

// NewObjectStore creates a new instance of ObjectStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewObjectStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ObjectStore {
	m := &ObjectStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
