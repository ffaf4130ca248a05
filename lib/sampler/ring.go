// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sampler

// ring is a circular FIFO buffer. Push appends at the back and
// PopFront evicts from the front, both O(1). The backing array only
// grows when Reserve asks for more room or a Push finds it full; it
// never shrinks.
//
// ring is not safe for concurrent use. SelectedChannel serializes
// access.
type ring[T any] struct {
	data []T
	// head is the index of the oldest element.
	head  int
	count int
}

// Len returns the number of stored elements.
func (buffer *ring[T]) Len() int { return buffer.count }

// Cap returns the current backing capacity.
func (buffer *ring[T]) Cap() int { return len(buffer.data) }

// Reserve grows the backing array to hold at least capacity elements,
// preserving order.
func (buffer *ring[T]) Reserve(capacity int) {
	if capacity <= len(buffer.data) {
		return
	}
	grown := make([]T, capacity)
	buffer.copyTo(grown)
	buffer.data = grown
	buffer.head = 0
}

// Push appends value at the back, doubling the backing array if full.
func (buffer *ring[T]) Push(value T) {
	if buffer.count == len(buffer.data) {
		buffer.Reserve(max(2*len(buffer.data), 16))
	}
	buffer.data[(buffer.head+buffer.count)%len(buffer.data)] = value
	buffer.count++
}

// PopFront removes and returns the oldest element. The second result
// is false when the buffer is empty.
func (buffer *ring[T]) PopFront() (T, bool) {
	var zero T
	if buffer.count == 0 {
		return zero, false
	}
	value := buffer.data[buffer.head]
	buffer.data[buffer.head] = zero
	buffer.head = (buffer.head + 1) % len(buffer.data)
	buffer.count--
	return value, true
}

// Back returns the newest element.
func (buffer *ring[T]) Back() (T, bool) {
	var zero T
	if buffer.count == 0 {
		return zero, false
	}
	return buffer.data[(buffer.head+buffer.count-1)%len(buffer.data)], true
}

// At returns the element at position index counting from the oldest.
// It panics when index is out of range.
func (buffer *ring[T]) At(index int) T {
	if index < 0 || index >= buffer.count {
		panic("sampler: ring index out of range")
	}
	return buffer.data[(buffer.head+index)%len(buffer.data)]
}

// Clear drops every element, keeping the backing array.
func (buffer *ring[T]) Clear() {
	clear(buffer.data)
	buffer.head = 0
	buffer.count = 0
}

// copyTo copies the elements oldest-first into destination, which must
// have room for Len elements. The stored data wraps at most once, so
// two copies suffice.
func (buffer *ring[T]) copyTo(destination []T) {
	if buffer.count == 0 {
		return
	}
	end := buffer.head + buffer.count
	if end <= len(buffer.data) {
		copy(destination, buffer.data[buffer.head:end])
		return
	}
	firstLength := copy(destination, buffer.data[buffer.head:])
	copy(destination[firstLength:], buffer.data[:end-len(buffer.data)])
}
