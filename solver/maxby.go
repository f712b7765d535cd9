package solver

import (
	"golang.org/x/exp/constraints"
)

// MaxBy finds the maximum element using a key function (like lodash's maxBy).
// The first element reaching the maximum wins.
func MaxBy[T any, K constraints.Ordered](slice []T, keyFunc func(T) K) (T, K) {
	var (
		maxElem T
		maxKey  K
	)
	if len(slice) == 0 {
		return maxElem, maxKey
	}

	maxElem = slice[0]
	maxKey = keyFunc(maxElem)
	for _, elem := range slice[1:] {
		if key := keyFunc(elem); key > maxKey {
			maxElem = elem
			maxKey = key
		}
	}

	return maxElem, maxKey
}
