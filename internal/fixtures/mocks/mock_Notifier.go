package mocks

import (
	context "context"

	notification "github.com/amirasaad/compago/pkg/domain/notification"
	mock "github.com/stretchr/testify/mock"
)

// Notifier is an autogenerated mock type for the Notifier type
type Notifier struct {
	mock.Mock
}

type Notifier_Expecter struct {
	mock *mock.Mock
}

func (_m *Notifier) EXPECT() *Notifier_Expecter {
	return &Notifier_Expecter{mock: &_m.Mock}
}

// Current provides a mock function with no fields
func (_m *Notifier) Current() (notification.Notification, bool) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Current")
	}

	var r0 notification.Notification
	var r1 bool
	if rf, ok := ret.Get(0).(func() (notification.Notification, bool)); ok {
		return rf()
	}
	if rf, ok := ret.Get(0).(func() notification.Notification); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(notification.Notification)
	}

	if rf, ok := ret.Get(1).(func() bool); ok {
		r1 = rf()
	} else {
		r1 = ret.Get(1).(bool)
	}

	return r0, r1
}

// Notifier_Current_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Current'
type Notifier_Current_Call struct {
	*mock.Call
}

// Current is a helper method to define mock.On call
func (_e *Notifier_Expecter) Current() *Notifier_Current_Call {
	return &Notifier_Current_Call{Call: _e.mock.On("Current")}
}

func (_c *Notifier_Current_Call) Return(_a0 notification.Notification, _a1 bool) *Notifier_Current_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// Dismiss provides a mock function with given fields: ctx
func (_m *Notifier) Dismiss(ctx context.Context) bool {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Dismiss")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context) bool); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// Notifier_Dismiss_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Dismiss'
type Notifier_Dismiss_Call struct {
	*mock.Call
}

// Dismiss is a helper method to define mock.On call
//   - ctx context.Context
func (_e *Notifier_Expecter) Dismiss(ctx interface{}) *Notifier_Dismiss_Call {
	return &Notifier_Dismiss_Call{Call: _e.mock.On("Dismiss", ctx)}
}

func (_c *Notifier_Dismiss_Call) Return(_a0 bool) *Notifier_Dismiss_Call {
	_c.Call.Return(_a0)
	return _c
}

// Notify provides a mock function with given fields: ctx, message, severity
func (_m *Notifier) Notify(ctx context.Context, message string, severity notification.Severity) notification.Notification {
	ret := _m.Called(ctx, message, severity)

	if len(ret) == 0 {
		panic("no return value specified for Notify")
	}

	var r0 notification.Notification
	if rf, ok := ret.Get(0).(func(context.Context, string, notification.Severity) notification.Notification); ok {
		r0 = rf(ctx, message, severity)
	} else {
		r0 = ret.Get(0).(notification.Notification)
	}

	return r0
}

// Notifier_Notify_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Notify'
type Notifier_Notify_Call struct {
	*mock.Call
}

// Notify is a helper method to define mock.On call
//   - ctx context.Context
//   - message string
//   - severity notification.Severity
func (_e *Notifier_Expecter) Notify(ctx interface{}, message interface{}, severity interface{}) *Notifier_Notify_Call {
	return &Notifier_Notify_Call{Call: _e.mock.On("Notify", ctx, message, severity)}
}

func (_c *Notifier_Notify_Call) Run(run func(ctx context.Context, message string, severity notification.Severity)) *Notifier_Notify_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(notification.Severity))
	})
	return _c
}

func (_c *Notifier_Notify_Call) Return(_a0 notification.Notification) *Notifier_Notify_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewNotifier creates a new instance of Notifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
