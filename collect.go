package lazystreams

// CollectSlice returns an accumulator that collects elements into a slice.
func CollectSlice[T any]() AccumulatorFunc[T, []T] {
	return func(acc []T, elem T) []T {
		return append(acc, elem)
	}
}

// CollectMap returns an accumulator that collects elements into a map.
// Elements are mapped using key and value, respectively.
// If a key is already in the map, the map entry will be overwritten.
func CollectMap[T any, K comparable, V any](key Function[T, K], value Function[T, V]) AccumulatorFunc[T, map[K]V] {
	return func(acc map[K]V, elem T) map[K]V {
		acc[key(elem)] = value(elem)
		return acc
	}
}

// CollectGroup returns an accumulator that collects elements into a group
// map. Elements will be grouped into slices according to key.
func CollectGroup[T any, K comparable, V any](key Function[T, K], value Function[T, V]) AccumulatorFunc[T, map[K][]V] {
	return func(acc map[K][]V, elem T) map[K][]V {
		group := key(elem)
		acc[group] = append(acc[group], value(elem))

		return acc
	}
}

// CollectPartition returns an accumulator that collects elements into a
// partition map. Elements will be grouped into slices according to pred.
func CollectPartition[T any, V any](pred PredicateFunc[T], value Function[T, V]) AccumulatorFunc[T, map[bool][]V] {
	return CollectGroup(Function[T, bool](pred), value)
}
