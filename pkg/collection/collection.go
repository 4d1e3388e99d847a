// Package collection has small generic helpers over slices.
package collection

// Map applies fn to every element of in and returns the results.
func Map[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

// Filter returns the elements of in for which keep returns true.
func Filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reduce folds in into a single value starting from init.
func Reduce[T, U any](in []T, init U, fn func(U, T) U) U {
	acc := init
	for _, v := range in {
		acc = fn(acc, v)
	}
	return acc
}

// Sum adds up the values produced by fn for every element of in.
func Sum[T any, N int | int64 | float64](in []T, fn func(T) N) N {
	var total N
	for _, v := range in {
		total += fn(v)
	}
	return total
}

// GroupBy buckets the elements of in by the key fn produces.
func GroupBy[T any, K comparable](in []T, fn func(T) K) map[K][]T {
	out := map[K][]T{}
	for _, v := range in {
		k := fn(v)
		out[k] = append(out[k], v)
	}
	return out
}

// Contains reports whether v is present in in.
func Contains[T comparable](in []T, v T) bool {
	for _, x := range in {
		if x == v {
			return true
		}
	}
	return false
}
