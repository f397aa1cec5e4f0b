package game

import (
	"math/rand"
	"sync"
)

// Rules holds the economic constants of a game.
type Rules struct {
	StartingMoney   int `mapstructure:"starting_money"`
	GoBonus         int `mapstructure:"go_bonus"`
	Bail            int `mapstructure:"bail"`
	CPUBuyReserve   int `mapstructure:"cpu_buy_reserve"`
	CPUBuildReserve int `mapstructure:"cpu_build_reserve"`
}

func DefaultRules() Rules {
	return Rules{
		StartingMoney:   1500,
		GoBonus:         200,
		Bail:            50,
		CPUBuyReserve:   500,
		CPUBuildReserve: 200,
	}
}

// Source supplies dice and shuffle randomness. *rand.Rand satisfies it but
// is not safe for concurrent use; see NewSource.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource returns a Source safe to share between games running on
// different goroutines.
func NewSource(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedSource) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}
