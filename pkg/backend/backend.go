// Package backend makes the simulated and hardware robots
// interchangeable behind one move contract.
//
// Three variants exist: Simulated steps the grid engine, Hardware
// drives the Go1 over MQTT, and Mock satisfies the same contract with
// no transport at all. Hardware construction falls back to Mock when
// the robot is unreachable, so callers can always exercise the full
// contract without a network.
package backend

import "strings"

// Kind identifies a backend variant.
type Kind string

const (
	KindSimulated Kind = "simulated"
	KindHardware  Kind = "hardware"
	KindMock      Kind = "mock"
)

// Robot is the uniform move contract. Speed is in [0,1] and duration
// in seconds; both are accepted by every variant for signature parity
// but only the hardware and mock variants act on them.
type Robot interface {
	// Move performs one movement command and reports success. An
	// unrecognized direction returns false with no side effects.
	Move(direction string, speed, duration float64) bool

	// Kind identifies the variant, letting callers observe the
	// hardware-to-mock fallback.
	Kind() Kind

	// Close releases the backend's transport, if any.
	Close() error
}

// validDirections is the backend-level direction set. It deliberately
// excludes "backward": only the grid engine resolves that alias.
var validDirections = map[string]bool{
	"up":    true,
	"down":  true,
	"left":  true,
	"right": true,
}

// normalizeDirection lower-cases and validates a direction string.
func normalizeDirection(direction string) (string, bool) {
	d := strings.ToLower(strings.TrimSpace(direction))
	return d, validDirections[d]
}

// clampSpeed limits speed to [0,1] before it reaches any transport.
func clampSpeed(speed float64) float64 {
	if speed < 0 {
		return 0
	}
	if speed > 1 {
		return 1
	}
	return speed
}
