// Package lazystreams provides lazily evaluated, memoized sequences.
//
// A stream is a singly-linked sequence whose cells are computed on demand:
// forcing a cell runs its deferred computation exactly once and caches the
// result, so repeated access never re-executes the producing logic. Streams
// may be infinite.
//
// Streams are constructed by wrapping a generator thunk using MakeDeferred,
// or by one of the producers that adapt slices, strings, readers, channels,
// regular expression matches, directory trees, and integer ranges.
//
// Elements may then be operated upon using mapping, filtering, slicing, and
// folding operations. These are lazy: each returns a new stream that forces
// no more of its input than a request requires, so they compose over
// infinite streams.
//
// Finally, the elements are consumed by eager terminal operations, such as
// collecting them into slices or maps, checking for matching elements, or
// simply iterating over them. Flush, Length, ToSlice, and Sort consume their
// entire input and therefore never return on an infinite stream; bound
// consumption with Take first. The core provides no cancellation mechanism.
//
// Stream cells may be shared between goroutines: forcing is mutually
// exclusive per cell, and concurrent callers converge on the single cached
// result.
package lazystreams
