package lazystreams

import (
	"errors"

	"golang.org/x/exp/slices"
)

// Function returns the result of applying an operation to elem.
type Function[T any, U any] func(elem T) U

// PredicateFunc returns true if elem matches a predicate.
type PredicateFunc[T any] func(elem T) bool

// LessFunc returns true if element a is "less" than element b.
type LessFunc[T any] func(a T, b T) bool

// ErrInvalidArgument is the error returned for negative or inverted indices
// passed to slicing operations.
var ErrInvalidArgument = errors.New("invalid argument")

// Map returns a stream of the results of applying mapp to each element of s,
// in order. mapp is applied to an element only when the corresponding output
// cell is forced.
func Map[T any, U any](s *Stream[T], mapp Function[T, U]) *Stream[U] {
	return MakeDeferred(func() (U, *Stream[U], bool, error) {
		head, rest, ok, err := uncons(s)
		if !ok || err != nil {
			var zero U
			return zero, nil, false, err
		}

		return mapp(head), Map(rest, mapp), true, nil
	})
}

// Filter returns a stream of the elements of s for which filter returns
// true, in order. Forcing an output cell forces as many leading cells of s
// as it takes to find the next matching element, and no more.
func Filter[T any](s *Stream[T], filter PredicateFunc[T]) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		for {
			head, rest, ok, err := uncons(s)
			if !ok || err != nil {
				return head, nil, false, err
			}

			if filter(head) {
				return head, Filter(rest, filter), true, nil
			}

			s = rest
		}
	})
}

// Take returns a stream of the first n elements of s, or all of them if s is
// shorter. If n <= 0, the result is empty and s is never forced.
func Take[T any](s *Stream[T], n int) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		if n <= 0 {
			var zero T
			return zero, nil, false, nil
		}

		head, rest, ok, err := uncons(s)
		if !ok || err != nil {
			return head, nil, false, err
		}

		return head, Take(rest, n-1), true, nil
	})
}

// Drop returns a stream of the elements of s after the first n, or the empty
// stream if s is shorter. The skip happens only when the result is itself
// forced.
func Drop[T any](s *Stream[T], n int) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		for n > 0 {
			_, rest, ok, err := uncons(s)
			if !ok || err != nil {
				var zero T
				return zero, nil, false, err
			}

			s = rest
			n--
		}

		head, rest, ok, err := uncons(s)
		if !ok || err != nil {
			return head, nil, false, err
		}

		return head, rest, true, nil
	})
}

// TakeWhile returns a stream of the leading run of elements of s for which
// pred returns true, stopping at the first element that does not match or at
// the end of s.
func TakeWhile[T any](s *Stream[T], pred PredicateFunc[T]) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		head, rest, ok, err := uncons(s)
		if !ok || err != nil {
			return head, nil, false, err
		}

		if !pred(head) {
			var zero T
			return zero, nil, false, nil
		}

		return head, TakeWhile(rest, pred), true, nil
	})
}

// DropWhile returns a stream of the elements of s after the leading run for
// which pred returns true. The skip happens only when the result is itself
// forced.
func DropWhile[T any](s *Stream[T], pred PredicateFunc[T]) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		for {
			head, rest, ok, err := uncons(s)
			if !ok || err != nil {
				return head, nil, false, err
			}

			if !pred(head) {
				return head, rest, true, nil
			}

			s = rest
		}
	})
}

// Append returns a stream of the elements of the given streams, concatenated
// in argument order. Only the stream currently supplying elements is forced;
// leading empty streams are skipped on demand.
func Append[T any](streams ...*Stream[T]) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		for len(streams) > 0 {
			head, rest, ok, err := uncons(streams[0])
			if err != nil {
				var zero T
				return zero, nil, false, err
			}

			if !ok {
				streams = streams[1:]
				continue
			}

			remaining := make([]*Stream[T], 0, len(streams))
			remaining = append(remaining, rest)
			remaining = append(remaining, streams[1:]...)

			return head, Append(remaining...), true, nil
		}

		var zero T
		return zero, nil, false, nil
	})
}

// Concat flattens a stream of streams into a stream of their elements, in
// order. Leading empty inner streams are skipped on demand, and the unforced
// remainder of the outer stream stays unforced.
func Concat[T any](streams *Stream[*Stream[T]]) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		var zero T

		for {
			inner, outerRest, ok, err := uncons(streams)
			if !ok || err != nil {
				return zero, nil, false, err
			}

			head, innerRest, ok, err := uncons(inner)
			if err != nil {
				return zero, nil, false, err
			}

			if !ok {
				streams = outerRest
				continue
			}

			return head, Concat(Cons(innerRest, outerRest)), true, nil
		}
	})
}

// Scan returns the running-fold stream of s: its first element is init, and
// each element after that is reduce applied to the previous output element
// and the next element of s. The output has one element more than s and is
// infinite if s is. The running accumulator is threaded through each cell's
// closure, so the output is an ordinary memoized stream: forcing its cells
// out of order is safe.
func Scan[T any, A any](s *Stream[T], init A, reduce AccumulatorFunc[T, A]) *Stream[A] {
	return Cons(init, scanTail(s, init, reduce))
}

func scanTail[T any, A any](s *Stream[T], acc A, reduce AccumulatorFunc[T, A]) *Stream[A] {
	return MakeDeferred(func() (A, *Stream[A], bool, error) {
		head, rest, ok, err := uncons(s)
		if !ok || err != nil {
			var zero A
			return zero, nil, false, err
		}

		next := reduce(acc, head)

		return next, scanTail(rest, next, reduce), true, nil
	})
}

// Sort returns a stream of the elements of s, sorted using less. The entire
// input is consumed when the first cell of the result is forced, so Sort
// never returns an element of an infinite stream.
func Sort[T any](s *Stream[T], less LessFunc[T]) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		var zero T

		result, err := ToSlice(s)
		if err != nil {
			return zero, nil, false, err
		}

		if len(result) == 0 {
			return zero, nil, false, nil
		}

		slices.SortFunc(result, less)

		return result[0], Produce(result[1:]), true, nil
	})
}

// Subrange returns a stream of the elements of s from index start
// (inclusive) to index end (exclusive). Negative or inverted bounds fail
// immediately with ErrInvalidArgument, without forcing s.
func Subrange[T any](s *Stream[T], start int, end int) (*Stream[T], error) {
	if start < 0 || end < 0 || end < start {
		return nil, ErrInvalidArgument
	}

	return Take(Drop(s, start), end-start), nil
}

// SubrangeFrom returns a stream of the elements of s from index start
// (inclusive) to the end of s. A negative start fails immediately with
// ErrInvalidArgument, without forcing s.
func SubrangeFrom[T any](s *Stream[T], start int) (*Stream[T], error) {
	if start < 0 {
		return nil, ErrInvalidArgument
	}

	return Drop(s, start), nil
}

// Identity returns a function that returns the same element it receives.
func Identity[T any]() Function[T, T] {
	return func(elem T) T {
		return elem
	}
}
