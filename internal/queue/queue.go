// Package queue implements FIFO ring buffer used as a work list.
package queue

const minSize = 4

// Queue is a FIFO queue. Capacity is always a power of two.
type Queue[T any] struct {
	items      []T
	head, tail int
	length     int
	zero       T
}

func New[T any](items ...T) *Queue[T] {
	size := minSize
	for size < len(items)+1 {
		size <<= 1
	}
	result := &Queue[T]{items: make([]T, size)}
	for _, item := range items {
		result.Append(item)
	}
	return result
}

func (q *Queue[T]) IsEmpty() bool {
	return q.length == 0
}

func (q *Queue[T]) Len() int {
	return q.length
}

func (q *Queue[T]) Append(item T) *Queue[T] {
	if q.length == len(q.items) {
		q.grow()
	}
	q.items[q.tail] = item
	q.tail = (q.tail + 1) & (len(q.items) - 1)
	q.length++
	return q
}

// First removes and returns the oldest item, the flag is false if queue is empty.
func (q *Queue[T]) First() (T, bool) {
	if q.length == 0 {
		return q.zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = q.zero
	q.head = (q.head + 1) & (len(q.items) - 1)
	q.length--
	return result, true
}

func (q *Queue[T]) grow() {
	items := make([]T, len(q.items)<<1)
	n := copy(items, q.items[q.head:])
	copy(items[n:], q.items[:q.head])
	q.head = 0
	q.tail = q.length
	q.items = items
}
