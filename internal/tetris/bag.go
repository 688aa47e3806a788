package tetris

import "math/rand"

// Bag is a 7-bag piece queue. Whenever it runs dry a shuffled copy of all
// seven shapes is appended, so every shape appears once per seven spawns.
type Bag struct {
	rng   *rand.Rand
	queue []Shape
}

// NewBag creates a bag with its own randomizer.
func NewBag(seed int64) *Bag {
	return &Bag{rng: rand.New(rand.NewSource(seed))}
}

func (b *Bag) refill() {
	shapes := Shapes()
	b.rng.Shuffle(len(shapes), func(i, j int) {
		shapes[i], shapes[j] = shapes[j], shapes[i]
	})
	b.queue = append(b.queue, shapes...)
}

// Pop removes and returns the next shape.
func (b *Bag) Pop() Shape {
	if len(b.queue) == 0 {
		b.refill()
	}
	if len(b.queue) == 0 {
		panic("tetris: piece queue underflow")
	}
	s := b.queue[0]
	b.queue = b.queue[1:]
	return s
}

// Peek returns the next n shapes without consuming them.
func (b *Bag) Peek(n int) []Shape {
	for len(b.queue) < n {
		b.refill()
	}
	out := make([]Shape, n)
	copy(out, b.queue[:n])
	return out
}

// PushFront makes s the next shape to be popped.
func (b *Bag) PushFront(s Shape) {
	b.queue = append([]Shape{s}, b.queue...)
}

// Discard drops every queued shape. The randomizer keeps its state.
func (b *Bag) Discard() {
	b.queue = b.queue[:0]
}

// Len returns the number of queued shapes.
func (b *Bag) Len() int {
	return len(b.queue)
}
