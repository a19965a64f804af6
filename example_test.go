package lazystreams

import (
	"fmt"
)

func Example() {
	// construct the infinite stream 1, 2, 3, ...
	ints := Iterate(1, func(elem int) int {
		return elem + 1
	})

	// running product: 1, 1, 2, 6, 24, 120, ...
	facts := Scan(ints, 1, func(acc int, elem int) int {
		return acc * elem
	})

	// materialize the first six factorials; only six cells are ever forced
	result, _ := ToSlice(Take(facts, 6))

	fmt.Printf("%+v\n", result)
	// Output: [1 1 2 6 24 120]
}
