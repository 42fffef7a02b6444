package usecase

import "math/rand/v2"

// Picker chooses an index in [0, n). n is always positive.
type Picker interface {
	Intn(n int) int
}

type randomPicker struct{}

// NewRandomPicker returns a Picker backed by the global math/rand/v2 source.
func NewRandomPicker() Picker { return randomPicker{} }

func (randomPicker) Intn(n int) int { return rand.IntN(n) }

func pick[T any](p Picker, items []T) T {
	return items[p.Intn(len(items))]
}
