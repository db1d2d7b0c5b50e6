package dice

import (
	"math/rand"
	"sync"
	"time"
)

// Sides of the dice thrown for curses
const Sides = 6

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/hideandseek/internal/dice Roller

// Roller throws a single die
type Roller interface {
	Roll(sides int) int
}

// DefaultRoller provides dice rolling functionality
type DefaultRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *DefaultRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &DefaultRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *DefaultRoller) Roll(sides int) int {
	if sides < 1 {
		sides = Sides
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}

// RollMany throws count dice and returns each face along with their sum.
func RollMany(r Roller, count, sides int) ([]int, int) {
	faces := make([]int, 0, count)
	sum := 0
	for i := 0; i < count; i++ {
		face := r.Roll(sides)
		faces = append(faces, face)
		sum += face
	}
	return faces, sum
}
