package aggregator

import (
	"math/rand/v2"
	"sync"
)

// Rand is the source of provider draws. Implementations must be safe for
// concurrent use.
type Rand interface {
	// Intn returns a uniform value in [0, n). n is always positive.
	Intn(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a PCG-backed Rand guarded by a mutex.
func NewRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
