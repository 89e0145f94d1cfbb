// Package mocks holds testify mocks for the event bus and the notifier, written in
// mockery's expecter style.
package mocks

import (
	context "context"

	events "github.com/amirasaad/compago/pkg/domain/events"
	eventbus "github.com/amirasaad/compago/pkg/eventbus"

	mock "github.com/stretchr/testify/mock"
)

// Bus is an autogenerated mock type for the Bus type
type Bus struct {
	mock.Mock
}

type Bus_Expecter struct {
	mock *mock.Mock
}

func (_m *Bus) EXPECT() *Bus_Expecter {
	return &Bus_Expecter{mock: &_m.Mock}
}

// Emit provides a mock function with given fields: ctx, event
func (_m *Bus) Emit(ctx context.Context, event events.Event) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for Emit")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, events.Event) error); ok {
		r0 = rf(ctx, event)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Bus_Emit_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Emit'
type Bus_Emit_Call struct {
	*mock.Call
}

// Emit is a helper method to define mock.On call
//   - ctx context.Context
//   - event events.Event
func (_e *Bus_Expecter) Emit(ctx interface{}, event interface{}) *Bus_Emit_Call {
	return &Bus_Emit_Call{Call: _e.mock.On("Emit", ctx, event)}
}

func (_c *Bus_Emit_Call) Run(run func(ctx context.Context, event events.Event)) *Bus_Emit_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(events.Event))
	})
	return _c
}

func (_c *Bus_Emit_Call) Return(_a0 error) *Bus_Emit_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *Bus_Emit_Call) RunAndReturn(run func(context.Context, events.Event) error) *Bus_Emit_Call {
	_c.Call.Return(run)
	return _c
}

// Register provides a mock function with given fields: eventType, handler
func (_m *Bus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	_m.Called(eventType, handler)
}

// Bus_Register_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Register'
type Bus_Register_Call struct {
	*mock.Call
}

// Register is a helper method to define mock.On call
//   - eventType events.EventType
//   - handler eventbus.HandlerFunc
func (_e *Bus_Expecter) Register(eventType interface{}, handler interface{}) *Bus_Register_Call {
	return &Bus_Register_Call{Call: _e.mock.On("Register", eventType, handler)}
}

func (_c *Bus_Register_Call) Run(run func(eventType events.EventType, handler eventbus.HandlerFunc)) *Bus_Register_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(events.EventType), args[1].(eventbus.HandlerFunc))
	})
	return _c
}

func (_c *Bus_Register_Call) Return() *Bus_Register_Call {
	_c.Call.Return()
	return _c
}

// NewBus creates a new instance of Bus. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewBus(t interface {
	mock.TestingT
	Cleanup(func())
}) *Bus {
	m := &Bus{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
