package lazystreams

// ConsumerFunc consumes element elem.
type ConsumerFunc[T any] func(elem T)

// AccumulatorFunc folds element elem into the accumulator acc, returning
// acc, or a new accumulator.
type AccumulatorFunc[T any, A any] func(acc A, elem T) A

// Each calls each for each element of s, in order, forcing the entire
// stream. It never returns on an infinite stream.
func Each[T any](s *Stream[T], each ConsumerFunc[T]) error {
	for {
		head, rest, ok, err := uncons(s)
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		each(head)

		s = rest
	}
}

// Flush forces the entire stream for its side effects, discarding the
// elements. It never returns on an infinite stream.
func Flush[T any](s *Stream[T]) error {
	return Each(s, func(T) {})
}

// Reduce calls reduce for each element of s, folding it into accumulator
// acc, returning the final accumulator. On error it returns the accumulator
// so far, alongside the error. It never returns on an infinite stream.
func Reduce[T any, A any](s *Stream[T], acc A, reduce AccumulatorFunc[T, A]) (A, error) {
	err := Each(s, func(elem T) {
		acc = reduce(acc, elem)
	})

	return acc, err
}

// Length returns the number of elements of s, forcing the entire stream. It
// never returns on an infinite stream.
func Length[T any](s *Stream[T]) (int, error) {
	length := 0

	err := Each(s, func(T) {
		length++
	})

	return length, err
}

// ElementAt returns the element of s at 0-based index n, forcing at most n+1
// cells. A negative n fails with ErrInvalidArgument; an index past the end
// of s returns the zero value of T, like First on an empty stream.
func ElementAt[T any](s *Stream[T], n int) (T, error) {
	var zero T

	if n < 0 {
		return zero, ErrInvalidArgument
	}

	for {
		head, rest, ok, err := uncons(s)
		if !ok || err != nil {
			return zero, err
		}

		if n == 0 {
			return head, nil
		}

		s = rest
		n--
	}
}

// ToSlice collects the elements of s into a slice, in order, forcing the
// entire stream. It never returns on an infinite stream.
func ToSlice[T any](s *Stream[T]) ([]T, error) {
	return Reduce(s, nil, CollectSlice[T]())
}

// AnyMatch returns true as soon as pred returns true for an element of s,
// that is, an element matches. No cells are forced after a match, so
// AnyMatch terminates on an infinite stream that contains one.
func AnyMatch[T any](s *Stream[T], pred PredicateFunc[T]) (bool, error) {
	for {
		head, rest, ok, err := uncons(s)
		if err != nil {
			return false, err
		}

		if !ok {
			return false, nil
		}

		if pred(head) {
			return true, nil
		}

		s = rest
	}
}

// AllMatch returns true if pred returns true for all elements of s, that is,
// all elements match. No cells are forced after a failing element, so
// AllMatch terminates on an infinite stream that contains one.
func AllMatch[T any](s *Stream[T], pred PredicateFunc[T]) (bool, error) {
	for {
		head, rest, ok, err := uncons(s)
		if err != nil {
			return false, err
		}

		if !ok {
			return true, nil
		}

		if !pred(head) {
			return false, nil
		}

		s = rest
	}
}
