package form

import "sync"

// Stream holds the latest value of one form output and fans it out to
// subscribers. Every publish reaches subscribers, repeated values included.
type Stream[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]func(T)
	order  []int
	nextID int
}

// NewStream creates a stream holding initial
func NewStream[T any](initial T) *Stream[T] {
	return &Stream[T]{value: initial, subs: make(map[int]func(T))}
}

// Value returns the latest published value
func (s *Stream[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe registers fn and calls it once with the current value.
// The returned function stops delivery.
func (s *Stream[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Stream[T]) publish(v T) {
	s.mu.Lock()
	s.value = v
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
