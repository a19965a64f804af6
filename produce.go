package lazystreams

import (
	"context"
	"io"
	"io/fs"
	"path"
	"regexp"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

// Produce returns a stream of the elements of the given slices, in order.
// The elements are already in memory, but the stream is still built one cell
// per element on demand, so consuming code sees the same behavior as for any
// other source.
func Produce[T any](slices ...[]T) *Stream[T] {
	return produceSlices(slices, 0, 0)
}

func produceSlices[T any](slices [][]T, outer int, inner int) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		for outer < len(slices) && inner >= len(slices[outer]) {
			outer++
			inner = 0
		}

		if outer == len(slices) {
			var zero T
			return zero, nil, false, nil
		}

		return slices[outer][inner], produceSlices(slices, outer, inner+1), true, nil
	})
}

// ProduceChannel returns a stream of the elements received through ch, in
// order. Each cell receives exactly one element when forced; a closed
// channel ends the stream. Forcing blocks until an element arrives or ctx is
// canceled, in which case the context error propagates and the cell stays
// unforced.
func ProduceChannel[T any](ctx context.Context, ch <-chan T) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		var zero T

		select {
		case elem, ok := <-ch:
			if !ok {
				return zero, nil, false, nil
			}

			return elem, ProduceChannel(ctx, ch), true, nil

		case <-ctx.Done():
			return zero, nil, false, ctx.Err()
		}
	})
}

// ProduceString returns a stream of the runes of s, in order, decoded one
// rune per forced cell.
func ProduceString(s string) *Stream[rune] {
	return MakeDeferred(func() (rune, *Stream[rune], bool, error) {
		if len(s) == 0 {
			return 0, nil, false, nil
		}

		elem, size := utf8.DecodeRuneInString(s)

		return elem, ProduceString(s[size:]), true, nil
	})
}

// ProduceReader returns a stream of the runes read from r, one read per
// forced cell. io.EOF ends the stream; any other read error propagates
// through the force protocol unchanged.
func ProduceReader(r io.RuneReader) *Stream[rune] {
	return MakeDeferred(func() (rune, *Stream[rune], bool, error) {
		elem, _, err := r.ReadRune()
		if err == io.EOF {
			return 0, nil, false, nil
		}

		if err != nil {
			return 0, nil, false, err
		}

		return elem, ProduceReader(r), true, nil
	})
}

// ProduceMatches returns a stream of the successive non-overlapping matches
// of re in s, in order, one search per forced cell.
func ProduceMatches(re *regexp.Regexp, s string) *Stream[string] {
	return produceMatches(re, s, 0)
}

func produceMatches(re *regexp.Regexp, s string, offset int) *Stream[string] {
	return MakeDeferred(func() (string, *Stream[string], bool, error) {
		if offset > len(s) {
			return "", nil, false, nil
		}

		loc := re.FindStringIndex(s[offset:])
		if loc == nil {
			return "", nil, false, nil
		}

		match := s[offset+loc[0] : offset+loc[1]]

		next := offset + loc[1]
		if loc[0] == loc[1] {
			// empty match, step past it to guarantee progress
			next++
		}

		return match, produceMatches(re, s, next), true, nil
	})
}

// ProduceDir returns a stream of the paths of the file tree rooted at root
// in fsys, visiting root first and directories before their contents, in
// lexical order. Each forced cell visits one path, reading a directory only
// when its contents are demanded. I/O errors propagate through the force
// protocol unchanged.
func ProduceDir(fsys fs.FS, root string) *Stream[string] {
	return produceDir(fsys, []string{root})
}

func produceDir(fsys fs.FS, pending []string) *Stream[string] {
	return MakeDeferred(func() (string, *Stream[string], bool, error) {
		if len(pending) == 0 {
			return "", nil, false, nil
		}

		name := pending[0]

		info, err := fs.Stat(fsys, name)
		if err != nil {
			return "", nil, false, err
		}

		next := append([]string(nil), pending[1:]...)

		if info.IsDir() {
			entries, err := fs.ReadDir(fsys, name)
			if err != nil {
				return "", nil, false, err
			}

			children := make([]string, 0, len(entries)+len(next))
			for _, entry := range entries {
				children = append(children, path.Join(name, entry.Name()))
			}

			next = append(children, next...)
		}

		return name, produceDir(fsys, next), true, nil
	})
}

// Range returns a stream of the integers in the interval [from, to), in
// order. An empty interval yields the empty stream.
func Range[T constraints.Integer](from T, to T) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		if from >= to {
			var zero T
			return zero, nil, false, nil
		}

		return from, Range(from+1, to), true, nil
	})
}

// Iterate returns the infinite stream seed, next(seed), next(next(seed)),
// and so on. It never applies next ahead of demand: reading the element at
// index n applies next exactly n times.
func Iterate[T any](seed T, next Function[T, T]) *Stream[T] {
	return Cons(seed, iterateTail(seed, next))
}

func iterateTail[T any](seed T, next Function[T, T]) *Stream[T] {
	return MakeDeferred(func() (T, *Stream[T], bool, error) {
		elem := next(seed)

		return elem, iterateTail(elem, next), true, nil
	})
}
