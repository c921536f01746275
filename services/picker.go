package services

import (
	"math/rand"
	"sync"
	"time"
)

// Picker supplies the randomness of dish selection. Tests swap in a
// deterministic sequence.
type Picker interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

type randPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomPicker returns a Picker safe for concurrent use
func NewRandomPicker() Picker {
	return &randPicker{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *randPicker) Intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.Intn(n)
}

// between draws uniformly from [min, max]
func between(p Picker, min, max int) int {
	if max <= min {
		return min
	}
	return min + p.Intn(max-min+1)
}
