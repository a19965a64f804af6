package lazystreams

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/matryer/is"
)

func TestProduce(t *testing.T) {
	is := is.New(t)

	ints, err := ToSlice(Produce([]int{1, 2}, []int{3, 4, 5}))
	is.NoErr(err)
	is.Equal(ints, []int{1, 2, 3, 4, 5})
}

func TestProduce_Empty(t *testing.T) {
	is := is.New(t)

	empty, err := IsEmpty(Produce[int]())
	is.NoErr(err)
	is.True(empty)

	empty, err = IsEmpty(Produce([]int{}, []int{}))
	is.NoErr(err)
	is.True(empty)
}

func TestProduceChannel(t *testing.T) {
	is := is.New(t)

	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)

	ints, err := ToSlice(ProduceChannel(context.Background(), ch))
	is.NoErr(err)
	is.Equal(ints, []int{1, 2, 3})
}

func TestProduceChannel_Cancel(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan int)

	_, err := First(ProduceChannel(ctx, ch))
	is.True(errors.Is(err, context.Canceled))
}

func TestProduceString(t *testing.T) {
	is := is.New(t)

	runes, err := ToSlice(ProduceString("héllo"))
	is.NoErr(err)
	is.Equal(runes, []rune{'h', 'é', 'l', 'l', 'o'})
}

func TestProduceReader(t *testing.T) {
	is := is.New(t)

	runes, err := ToSlice(ProduceReader(strings.NewReader("abc")))
	is.NoErr(err)
	is.Equal(runes, []rune{'a', 'b', 'c'})
}

func TestProduceReader_Error(t *testing.T) {
	is := is.New(t)

	errRead := errors.New("read failed")

	runes := ProduceReader(&failingRuneReader{
		runes: []rune{'a', 'b'},
		err:   errRead,
	})

	head, err := First(runes)
	is.NoErr(err)
	is.Equal(head, 'a')

	rest, err := Rest(runes)
	is.NoErr(err)

	head, err = First(rest)
	is.NoErr(err)
	is.Equal(head, 'b')

	rest, err = Rest(rest)
	is.NoErr(err)

	_, err = First(rest)
	is.True(errors.Is(err, errRead))
}

func TestProduceMatches(t *testing.T) {
	is := is.New(t)

	matches, err := ToSlice(ProduceMatches(regexp.MustCompile(`\d+`), "a1bb22ccc333d"))
	is.NoErr(err)
	is.Equal(matches, []string{"1", "22", "333"})
}

func TestProduceMatches_NoMatch(t *testing.T) {
	is := is.New(t)

	empty, err := IsEmpty(ProduceMatches(regexp.MustCompile(`\d+`), "abc"))
	is.NoErr(err)
	is.True(empty)
}

func TestProduceDir(t *testing.T) {
	is := is.New(t)

	fsys := fstest.MapFS{
		"a.txt":     {},
		"sub/b.txt": {},
		"sub/c.txt": {},
	}

	paths, err := ToSlice(ProduceDir(fsys, "."))
	is.NoErr(err)
	is.Equal(paths, []string{".", "a.txt", "sub", "sub/b.txt", "sub/c.txt"})
}

func TestProduceDir_NotExist(t *testing.T) {
	is := is.New(t)

	fsys := fstest.MapFS{}

	_, err := First(ProduceDir(fsys, "missing"))
	is.True(err != nil)
}

func TestRange(t *testing.T) {
	is := is.New(t)

	ints, err := ToSlice(Range(3, 7))
	is.NoErr(err)
	is.Equal(ints, []int{3, 4, 5, 6})

	runes, err := ToSlice(Range[rune]('a', 'd'))
	is.NoErr(err)
	is.Equal(runes, []rune{'a', 'b', 'c'})
}

func TestRange_Empty(t *testing.T) {
	is := is.New(t)

	empty, err := IsEmpty(Range(5, 5))
	is.NoErr(err)
	is.True(empty)

	empty, err = IsEmpty(Range(7, 3))
	is.NoErr(err)
	is.True(empty)
}

func TestIterate(t *testing.T) {
	is := is.New(t)

	ints, err := ToSlice(Take(Iterate(1, double), 5))
	is.NoErr(err)
	is.Equal(ints, []int{1, 2, 4, 8, 16})
}

func TestIterate_Lazy(t *testing.T) {
	is := is.New(t)

	calls := 0

	ints := Iterate(1, func(elem int) int {
		calls++
		return elem * 2
	})

	is.Equal(calls, 0)

	head, err := First(ints)
	is.NoErr(err)
	is.Equal(head, 1)
	is.Equal(calls, 0)

	head, err = ElementAt(ints, 3)
	is.NoErr(err)
	is.Equal(head, 8)
	is.Equal(calls, 3)
}

// failingRuneReader yields its runes in order, then fails with err instead
// of io.EOF.
type failingRuneReader struct {
	runes []rune
	err   error
}

func (r *failingRuneReader) ReadRune() (rune, int, error) {
	if len(r.runes) == 0 {
		return 0, 0, r.err
	}

	elem := r.runes[0]
	r.runes = r.runes[1:]

	return elem, 1, nil
}

func double(elem int) int {
	return elem * 2
}

func increment(elem int) int {
	return elem + 1
}
