package lazystreams

import (
	"bytes"
	"errors"
	"runtime"
	"strconv"
	"sync"
)

// ThunkFunc produces the deferred step of a stream cell.
// Returning ok == true yields an element and the stream of the elements
// after it; a nil tail is the empty stream. Returning ok == false with a
// nil error ends the stream. Returning a non-nil error propagates it to the
// caller forcing the cell, leaving the cell unforced: a later force
// re-invokes the thunk, so thunks must be safe to re-run after a failed
// attempt, or the caller must not retry.
type ThunkFunc[T any] func() (head T, tail *Stream[T], ok bool, err error)

// ErrInvalidProducer is the error returned when forcing a cell whose
// producer thunk is nil.
var ErrInvalidProducer = errors.New("invalid producer")

// ErrReentrantForce is the error returned when a thunk forces the very cell
// it is currently populating.
var ErrReentrantForce = errors.New("reentrant force")

// ErrImmutable is the error returned by attempts to assign into an element
// or tail of an existing stream.
var ErrImmutable = errors.New("streams are immutable")

// A Stream is a lazily evaluated, memoized, singly-linked sequence of
// elements. A cell is either unforced, holding the thunk that computes it,
// or forced, holding its cached head, tail, and emptiness. Forcing happens
// at most once; a forced cell never changes.
//
// The canonical empty stream is the nil *Stream: it is shared, never
// allocated, and forced by definition. All operations accept it.
type Stream[T any] struct {
	mu      sync.Mutex
	forcing chan struct{} // in-flight force latch, nil when idle
	forcer  uint64        // goroutine id of the in-flight forcer
	thunk   ThunkFunc[T]
	forced  bool
	empty   bool
	head    T
	tail    *Stream[T]
}

// Empty returns the canonical empty stream.
func Empty[T any]() *Stream[T] {
	return nil
}

// MakeDeferred wraps thunk as an unforced stream cell. It is the single
// construction primitive: every non-empty stream is ultimately created
// through it. The thunk runs when the cell is first forced, at most once.
func MakeDeferred[T any](thunk ThunkFunc[T]) *Stream[T] {
	return &Stream[T]{thunk: thunk}
}

// Cons returns a stream of head followed by the elements of tail. Only the
// first level is deferred; head and tail are whatever the caller already
// built.
func Cons[T any](head T, tail *Stream[T]) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		return head, tail, true, nil
	})
}

// IsEmpty reports whether s has no elements, forcing its first cell.
func IsEmpty[T any](s *Stream[T]) (bool, error) {
	_, _, ok, err := uncons(s)
	return err == nil && !ok, err
}

// First returns the first element of s, forcing its first cell. On an empty
// stream it returns the zero value of T rather than failing.
func First[T any](s *Stream[T]) (T, error) {
	head, _, _, err := uncons(s)
	return head, err
}

// Rest returns the stream of the elements of s after the first, forcing the
// first cell of s only: the returned stream itself stays unforced. On an
// empty stream it returns the canonical empty stream rather than failing.
func Rest[T any](s *Stream[T]) (*Stream[T], error) {
	_, tail, _, err := uncons(s)
	return tail, err
}

// SetFirst always fails with ErrImmutable: streams are read-only once
// constructed.
func SetFirst[T any](*Stream[T], T) error {
	return ErrImmutable
}

// SetRest always fails with ErrImmutable: streams are read-only once
// constructed.
func SetRest[T any](*Stream[T], *Stream[T]) error {
	return ErrImmutable
}

// uncons forces the first cell of s and decomposes it, returning ok == false
// for the empty stream. It is the only way the rest of the package observes
// a cell's contents.
func uncons[T any](s *Stream[T]) (T, *Stream[T], bool, error) {
	var zero T

	if s == nil {
		return zero, nil, false, nil
	}

	if err := s.force(); err != nil {
		return zero, nil, false, err
	}

	if s.empty {
		return zero, nil, false, nil
	}

	return s.head, s.tail, true, nil
}

// force evaluates the cell's thunk and caches the result. It is idempotent:
// a forced cell is returned as is, and concurrent forcers converge on the
// single cached result. Only a successful thunk invocation transitions the
// cell; on error the cell stays unforced with its thunk intact, so a retry
// re-invokes it.
func (s *Stream[T]) force() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()

	for {
		if s.forced {
			s.mu.Unlock()
			return nil
		}

		if s.forcing == nil {
			break
		}

		if s.forcer == goid() {
			s.mu.Unlock()
			return ErrReentrantForce
		}

		// another goroutine is forcing this cell; wait for it and re-check
		wait := s.forcing
		s.mu.Unlock()

		<-wait

		s.mu.Lock()
	}

	thunk := s.thunk
	s.forcing = make(chan struct{})
	s.forcer = goid()

	s.mu.Unlock()

	var (
		head     T
		tail     *Stream[T]
		ok       bool
		err      error
		returned bool
	)

	// the latch must be released even if the thunk panics, otherwise every
	// later force of this cell would block forever
	defer func() {
		s.mu.Lock()

		if returned && err == nil {
			if ok {
				s.head = head
				s.tail = tail
			} else {
				s.empty = true
			}

			s.forced = true
			s.thunk = nil
		}

		close(s.forcing)
		s.forcing = nil
		s.forcer = 0

		s.mu.Unlock()
	}()

	if thunk == nil {
		err = ErrInvalidProducer
		returned = true

		return err
	}

	head, tail, ok, err = thunk()
	returned = true

	return err
}

// goid returns the id of the calling goroutine, parsed from the runtime
// stack header ("goroutine 123 [running]:"). It is only consulted on the
// force slow path, to tell a reentrant force apart from a concurrent one.
func goid() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)

	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}

	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}

	return id
}
