package verification

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	CodeLength = 4
	minCode    = 1000
	maxCode    = 9999
)

// RandomSource is the randomness a code generator draws from.
// Intn returns a value in [0, n).
type RandomSource interface {
	Intn(n int) int
}

// NewCode returns a 4-digit code in [1000, 9999].
func NewCode(r RandomSource) string {
	return fmt.Sprintf("%0*d", CodeLength, minCode+r.Intn(maxCode-minCode+1))
}

// lockedSource is a math/rand source that is safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomSource(seed int64) RandomSource {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func NewTimeSeededSource() RandomSource {
	return NewRandomSource(time.Now().UnixNano())
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}
