// pattern: Functional Core

package split

import "math"

// KeyboardSignal caches the on-screen keyboard height and fans changes out
// to subscribers. It is not safe for concurrent use; publish from the
// goroutine that drives the container.
type KeyboardSignal struct {
	height float64
	subs   []keyboardSub
	nextID int
}

type keyboardSub struct {
	id int
	fn func(height float64)
}

// NewKeyboardSignal returns a signal with a zero height.
func NewKeyboardSignal() *KeyboardSignal {
	return &KeyboardSignal{}
}

// Height returns the last published height.
func (s *KeyboardSignal) Height() float64 {
	return s.height
}

// Publish caches height and notifies subscribers when it changed.
func (s *KeyboardSignal) Publish(height float64) {
	height = math.Max(sanitize(height), 0)
	if height == s.height {
		return
	}
	s.height = height
	for _, sub := range append([]keyboardSub(nil), s.subs...) {
		sub.fn(height)
	}
}

// Subscribe registers fn, delivers the cached height to it and returns a
// function that removes the subscription. Cancelling twice is harmless.
func (s *KeyboardSignal) Subscribe(fn func(height float64)) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, keyboardSub{id: id, fn: fn})
	fn(s.height)
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (s *KeyboardSignal) Subscribers() int {
	return len(s.subs)
}
