// Package gen produces the synthetic column values written during a blast.
// Values are uniform random draws sized to look plausible in dashboards, not
// samples of any real workload distribution.
package gen

import (
	"fmt"
	"math/rand"
	"time"
)

// symbolPoolSize is the number of pre-generated symbol values a generator
// draws from. Large enough to exercise QuestDB's symbol interning, small
// enough that values repeat and compress.
const symbolPoolSize = 4000

const dayNanos = int64(24 * time.Hour)

// Generator produces random values for the supported column types. It is not
// safe for concurrent use; every sender owns its own instance.
type Generator struct {
	symbols   []string
	baseNanos int64
	rng       *rand.Rand
}

// New returns a Generator with a fresh symbol pool, drawing non-designated
// timestamps from the day either side of base.
func New(base time.Time, rng *rand.Rand) *Generator {
	return &Generator{
		symbols:   buildSymbolPool(),
		baseNanos: base.UnixNano(),
		rng:       rng,
	}
}

// buildSymbolPool pre-generates the pool of human-readable symbol values.
// Entry i cycles through five template families so every pool mixes
// hostnames, service names, regions, environments and application ids.
func buildSymbolPool() []string {
	regions := [...]string{"us-east", "us-west", "eu-central", "ap-south"}
	envs := [...]string{"prod", "stage", "dev"}

	symbols := make([]string, symbolPoolSize)
	for i := range symbols {
		switch i % 5 {
		case 0:
			symbols[i] = fmt.Sprintf("host-%04d", i%100)
		case 1:
			symbols[i] = fmt.Sprintf("service-%d", i%50)
		case 2:
			symbols[i] = "region-" + regions[i%4]
		case 3:
			symbols[i] = "env-" + envs[i%3]
		case 4:
			symbols[i] = fmt.Sprintf("app-%03d", i%200)
		}
	}
	return symbols
}

// Symbol returns a uniformly drawn entry of the symbol pool.
func (g *Generator) Symbol() string {
	return g.symbols[g.rng.Intn(len(g.symbols))]
}

// Long returns a uniform value in [0, 1000000).
func (g *Generator) Long() int64 {
	return g.rng.Int63n(1_000_000)
}

// Double returns a uniform value in [0, 100).
func (g *Generator) Double() float64 {
	return g.rng.Float64() * 100
}

// TimestampNanos returns a nanosecond timestamp up to a day either side of
// the base time. Draws are independent between calls, so secondary timestamp
// columns land deliberately out of order.
func (g *Generator) TimestampNanos() int64 {
	offset := g.rng.Int63n(2*dayNanos) - dayNanos
	return g.baseNanos + offset
}
