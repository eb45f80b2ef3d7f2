package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"gokinet/domain/rawtable"
)

// KineticsConfig configures the synthetic kinetics generator
type KineticsConfig struct {
	Experiments int     `json:"experiments"`
	Replicates  int     `json:"replicates"`
	Points      int     `json:"points"`
	IntervalSec float64 `json:"interval_sec"`
	Amplitude   float64 `json:"amplitude"`
	DecayRate   float64 `json:"decay_rate"`
	NoiseStdDev float64 `json:"noise_std_dev"`
	Seed        int64   `json:"seed"`
}

// DefaultKineticsConfig returns sensible defaults for synthetic decay data
func DefaultKineticsConfig() KineticsConfig {
	return KineticsConfig{
		Experiments: 2,
		Replicates:  2,
		Points:      12,
		IntervalSec: 30,
		Amplitude:   1.0,
		DecayRate:   0.005,
		NoiseStdDev: 0.01,
		Seed:        42,
	}
}

// KineticsGenerator produces deterministic exponential-decay measurements
// shaped like a plate-reader export.
type KineticsGenerator struct {
	config KineticsConfig
	rng    *rand.Rand
}

// NewKineticsGenerator creates a generator seeded from the config
func NewKineticsGenerator(config KineticsConfig) *KineticsGenerator {
	return &KineticsGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Rows returns the full string grid including the header row.
// Columns: time, signal, experiment, replicate, temperature.
func (g *KineticsGenerator) Rows() [][]string {
	rows := [][]string{{"time", "signal", "experiment", "replicate", "temp_c"}}

	for e := 0; e < g.config.Experiments; e++ {
		label := fmt.Sprintf("Condition %c", 'A'+e)
		rate := g.config.DecayRate * (1 + 0.5*float64(e))

		for r := 1; r <= g.config.Replicates; r++ {
			for p := 0; p < g.config.Points; p++ {
				t := float64(p) * g.config.IntervalSec
				signal := g.config.Amplitude * math.Exp(-rate*t)
				signal += g.rng.NormFloat64() * g.config.NoiseStdDev

				rows = append(rows, []string{
					strconv.FormatFloat(t, 'g', -1, 64),
					strconv.FormatFloat(signal, 'f', 6, 64),
					label,
					strconv.Itoa(r),
					"37",
				})
			}
		}
	}

	return rows
}

// Table returns the generated data as a parsed raw table
func (g *KineticsGenerator) Table() *rawtable.RawTable {
	table, err := rawtable.FromStringRows("synthetic", g.Rows(), true)
	if err != nil {
		// Generated grids always have a header row.
		panic(err)
	}
	return table
}

// CSV renders the generated data as comma-separated bytes
func (g *KineticsGenerator) CSV() []byte {
	var b strings.Builder
	for _, row := range g.Rows() {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
