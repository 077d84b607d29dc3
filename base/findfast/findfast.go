// Copyright (c) 2026, Worldkit Developers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package findfast implements an optimized bidirectional slice search
// that can save significant time when you have a rough idea of where
// an item might be, as is the case for repeated lookups of node and
// field indexes in the scene graph.
package findfast

// FindFunc returns the index of the first item in the slice for which
// the match function returns true, or -1 if there is none. The optional
// startIndex is used to search bidirectionally outward from that point,
// which is much faster when the caller has a guess about the location.
// If no startIndex is given, the search starts in the middle.
func FindFunc[T any](s []T, match func(e T) bool, startIndex ...int) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	si := n / 2
	if len(startIndex) > 0 && startIndex[0] >= 0 {
		si = min(startIndex[0], n-1)
	}
	if si == 0 {
		for i, e := range s {
			if match(e) {
				return i
			}
		}
		return -1
	}
	up, down := si+1, si
	for down >= 0 || up < n {
		if down >= 0 {
			if match(s[down]) {
				return down
			}
			down--
		}
		if up < n {
			if match(s[up]) {
				return up
			}
			up++
		}
	}
	return -1
}
