package port

//go:generate mockgen -destination=mocks/mock_notifier.go -package=mocks github.com/bnema/medusa/internal/application/port Notifier,Dispatcher

// Notifier shows modal warnings to the user.
type Notifier interface {
	Warn(title, message string)
}

// Dispatcher runs functions on the UI thread.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatchFunc) Dispatch(fn func()) {
	f(fn)
}

// Inline runs functions immediately on the caller's goroutine.
var Inline Dispatcher = DispatchFunc(func(fn func()) { fn() })
