package route

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
)

// Config controls the behavior of the router.
type Config struct {
	// Grid and search limits
	GridPitch     float64 // Routing grid pitch in mm (default: 1.27)
	MaxIterations int     // Open-set pops per request before giving up (default: 50000)

	// Proximity rules
	NearPinDistance float64 // Manhattan distance from an endpoint that exempts a cell from body tests (default: 2.0)
	WireHitFactor   float64 // Same-net wire hit tolerance as a fraction of pitch (default: 0.6)
	PinHitFactor    float64 // Pin proximity tolerance as a fraction of pitch (default: 0.6)
	ExcludeRadius   float64 // Pins this close to a request endpoint belong to the request (default: 0.1)

	// Cost shaping
	BendPenalty float64 // Added per direction change, fraction of pitch (default: 0.1)
	NetBonus    float64 // Subtracted when approaching a same-net wire, fraction of pitch (default: 0.05)

	// NewID generates wire identifiers. Defaults to random UUIDs.
	NewID func() string

	// Logger receives per-request diagnostics. Defaults to discarding output.
	Logger *log.Logger
}

// DefaultConfig returns a Config with the standard KiCad grid and tolerances.
func DefaultConfig() *Config {
	return &Config{
		GridPitch:       GridPitch,
		MaxIterations:   50000,
		NearPinDistance: 2.0,
		WireHitFactor:   0.6,
		PinHitFactor:    0.6,
		ExcludeRadius:   0.1,
		BendPenalty:     0.1,
		NetBonus:        0.05,
	}
}

// Validate checks the configuration for errors and fills in defaults.
func (c *Config) Validate() error {
	if c.GridPitch <= 0 {
		return fmt.Errorf("route: grid pitch must be positive, got %g", c.GridPitch)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("route: max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.WireHitFactor <= 0 || c.PinHitFactor <= 0 {
		return fmt.Errorf("route: hit tolerances must be positive")
	}
	if c.NearPinDistance < 0 {
		c.NearPinDistance = 0
	}
	if c.ExcludeRadius < 0 {
		c.ExcludeRadius = 0
	}

	if c.NewID == nil {
		c.NewID = uuid.NewString
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	return nil
}

// SequentialIDs returns an id generator producing prefix-1, prefix-2, ...
// It is useful for reproducible output.
func SequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
