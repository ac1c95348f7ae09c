package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// EventPublisher is a mock type for the EventPublisher type
type EventPublisher struct {
	mock.Mock
}

func (_m *EventPublisher) Publish(ctx context.Context, subject string, payload any) error {
	ret := _m.Called(ctx, subject, payload)
	return ret.Error(0)
}

func (_m *EventPublisher) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}

// NewEventPublisher creates a new instance of EventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
