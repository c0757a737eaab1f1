package utils

// RotateOnce rotates items left by one: [ 0 1 2 3 ] => [ 1 2 3 0 ].
func RotateOnce[T any](items []T) []T {
	tmp := items[0]
	copy(items, items[1:])
	items[len(items)-1] = tmp
	return items
}

// RotateOnceR rotates items right by one: [ 0 1 2 3 ] => [ 3 0 1 2 ].
func RotateOnceR[T any](items []T) []T {
	tmp := items[len(items)-1]
	copy(items[1:], items)
	items[0] = tmp
	return items
}
