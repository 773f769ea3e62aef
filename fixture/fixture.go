// Package fixture provides lazily computed test values with deterministic teardown.
//
// A Fixture wraps a setup function and a teardown function around a value that does not
// exist until a test first asks for it. The value is computed at most once per Fixture, and
// teardown runs at most once, and only if the value was ever computed:
//
//	db := fixture.NewWithTeardown(openTestDB, func(db **sql.DB) error { return (*db).Close() })
//	defer db.Close()
//
//	t.Run("insert", func(t *testing.T) {
//		conn := db.MustGet(t) // setup runs here
//		...
//	})
//	t.Run("query", func(t *testing.T) {
//		conn := db.MustGet(t) // same value, setup does not run again
//		...
//	})
//
// Closures that capture the same *Fixture share one value and one teardown. Use Clone to get
// an independent Fixture with the same behavior and its own value.
package fixture

import (
	"errors"

	"github.com/luno-testing/luno/logging"

	"github.com/stretchr/testify/require"
)

// ErrClosed is returned by Get once the Fixture has been closed.
var ErrClosed = errors.New("fixture: value requested after teardown")

// State is the lifecycle position of a Fixture. A Fixture only moves forward:
// Uninitialized, then Initialized on the first successful Get, then Destroyed on Close.
type State int

const (
	Uninitialized State = iota
	Initialized
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Scope is anything that can run a function when a test ends and report an error on that
// test. Both *testing.T and *framework.Context implement it.
type Scope interface {
	Cleanup(func())
	Errorf(format string, args ...interface{})
}

// Fixture is a lazily computed value of type T with a teardown step.
//
// A Fixture is not safe for concurrent use. Tests running in parallel should each use their
// own Fixture, for instance one obtained with Clone.
type Fixture[T any] struct {
	setup    func() (T, error)
	teardown func(*T) error
	name     string
	logger   logging.Logger
	value    *T
	state    State
}

// New creates a Fixture whose value is produced by setup. Teardown does nothing. Setup must
// not be nil.
func New[T any](setup func() (T, error)) *Fixture[T] {
	return NewWithTeardown(setup, nil)
}

// Of creates a Fixture whose setup returns value. It behaves exactly like New with a setup
// function returning the same value.
//
// The value is copied with ordinary Go assignment, so a slice or map is shared between the
// original and every Clone of the Fixture.
func Of[T any](value T) *Fixture[T] {
	return New(func() (T, error) { return value, nil })
}

// NewWithTeardown creates a Fixture whose value is produced by setup and released by
// teardown. Teardown receives a pointer to the stored value, so it sees any changes that
// tests made to it. A nil teardown does nothing. Setup must not be nil.
func NewWithTeardown[T any](setup func() (T, error), teardown func(*T) error) *Fixture[T] {
	if setup == nil {
		panic("fixture: setup function must not be nil")
	}
	if teardown == nil {
		teardown = func(*T) error { return nil }
	}
	return &Fixture[T]{
		setup:    setup,
		teardown: teardown,
		logger:   logging.NullLogger(),
	}
}

// Named sets the name used in log messages. It returns the Fixture to allow chaining.
func (f *Fixture[T]) Named(name string) *Fixture[T] {
	f.name = name
	return f
}

// WithLogger sets the logger that receives setup and teardown events. It returns the
// Fixture to allow chaining.
func (f *Fixture[T]) WithLogger(logger logging.Logger) *Fixture[T] {
	if logger == nil {
		logger = logging.NullLogger()
	}
	f.logger = logger
	return f
}

// Clone returns a new Fixture with the same setup, teardown, name and logger, but with its
// own value that has not been computed yet. Closing one does not affect the other.
func (f *Fixture[T]) Clone() *Fixture[T] {
	return &Fixture[T]{
		setup:    f.setup,
		teardown: f.teardown,
		name:     f.name,
		logger:   f.logger,
	}
}

// State returns the current lifecycle state.
func (f *Fixture[T]) State() State {
	return f.state
}

// Get returns a pointer to the fixture value, calling setup if this is the first time.
//
// Every call until Close returns the same pointer, so a change made through it is seen by
// all later callers. If setup fails, its error is returned as is and the Fixture stays
// uninitialized; the next Get calls setup again.
func (f *Fixture[T]) Get() (*T, error) {
	switch f.state {
	case Initialized:
		return f.value, nil
	case Destroyed:
		return nil, ErrClosed
	}
	f.log("running setup")
	value, err := f.setup()
	if err != nil {
		f.log("setup failed: %s", err)
		return nil, err
	}
	f.value = &value
	f.state = Initialized
	return f.value, nil
}

// MustGet is like Get, but fails the test immediately if setup returns an error.
func (f *Fixture[T]) MustGet(t require.TestingT) *T {
	value, err := f.Get()
	require.NoError(t, err, "fixture %s could not be set up", f.displayName())
	return value
}

// Close runs teardown if the value was ever computed and returns teardown's error as is.
// The Fixture can not be used afterward. Calling Close again does nothing.
func (f *Fixture[T]) Close() error {
	previous := f.state
	f.state = Destroyed
	if previous != Initialized {
		return nil
	}
	value := f.value
	f.value = nil
	f.log("running teardown")
	if err := f.teardown(value); err != nil {
		f.log("teardown failed: %s", err)
		return err
	}
	return nil
}

// In arranges for Close to be called when scope ends, and returns the Fixture. A teardown
// error is reported on the scope.
func (f *Fixture[T]) In(scope Scope) *Fixture[T] {
	scope.Cleanup(func() {
		if err := f.Close(); err != nil {
			scope.Errorf("teardown of fixture %s failed: %s", f.displayName(), err)
		}
	})
	return f
}

func (f *Fixture[T]) displayName() string {
	if f.name == "" {
		return "(unnamed)"
	}
	return `"` + f.name + `"`
}

func (f *Fixture[T]) log(message string, args ...interface{}) {
	logging.WithPrefix(f.logger, "fixture "+f.displayName()+": ").Printf(message, args...)
}
