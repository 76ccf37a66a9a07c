package util

// Copyable values can produce a copy that shares no mutable state with them
type Copyable[A any] interface {
	Copy() A
}

// CopyAll deep-copies every element of items into a new slice
func CopyAll[A Copyable[A]](items []A) []A {
	copied := make([]A, len(items))
	for i, item := range items {
		copied[i] = item.Copy()
	}
	return copied
}
