// Package ints implements a set of small non-negative integers (mode and language indexes).
package ints

import "math/bits"

const wordBits = 64

// Set is a bit set. Negative items are ignored.
type Set struct {
	words []uint64
}

func NewSet(items ...int) *Set {
	result := &Set{}
	result.Add(items...)
	return result
}

func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}

		index := item / wordBits
		if index >= len(s.words) {
			words := make([]uint64, index+1)
			copy(words, s.words)
			s.words = words
		}
		s.words[index] |= 1 << (uint(item) % wordBits)
	}
	return s
}

func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if item >= 0 && item/wordBits < len(s.words) {
			s.words[item/wordBits] &^= 1 << (uint(item) % wordBits)
		}
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < 0 || item/wordBits >= len(s.words) {
		return false
	}
	return s.words[item/wordBits]&(1<<(uint(item)%wordBits)) != 0
}

func (s *Set) Len() int {
	result := 0
	for _, w := range s.words {
		result += bits.OnesCount64(w)
	}
	return result
}

func (s *Set) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, w := range s.words {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			result = append(result, i*wordBits+bit)
			w &= w - 1
		}
	}
	return result
}

// Union adds all items of t to s.
func (s *Set) Union(t *Set) *Set {
	if len(t.words) > len(s.words) {
		words := make([]uint64, len(t.words))
		copy(words, s.words)
		s.words = words
	}
	for i, w := range t.words {
		s.words[i] |= w
	}
	return s
}
