package command

import "fmt"

// Mode is a locomotion or posture mode of the Go1. Transitions are
// requested, not negotiated: the firmware sends no acknowledgement.
type Mode string

const (
	ModeDance1        Mode = "dance1"
	ModeDance2        Mode = "dance2"
	ModeStraightHand1 Mode = "straightHand1"
	ModeDamping       Mode = "damping"
	ModeStandUp       Mode = "standUp"
	ModeStandDown     Mode = "standDown"
	ModeRecoverStand  Mode = "recoverStand"
	ModeStand         Mode = "stand"
	ModeWalk          Mode = "walk"
	ModeRun           Mode = "run"
	ModeClimb         Mode = "climb"
)

var modes = map[Mode]bool{
	ModeDance1:        true,
	ModeDance2:        true,
	ModeStraightHand1: true,
	ModeDamping:       true,
	ModeStandUp:       true,
	ModeStandDown:     true,
	ModeRecoverStand:  true,
	ModeStand:         true,
	ModeWalk:          true,
	ModeRun:           true,
	ModeClimb:         true,
}

// ParseMode resolves a mode name against the closed enumeration.
func ParseMode(name string) (Mode, error) {
	m := Mode(name)
	if !modes[m] {
		return "", fmt.Errorf("unknown mode %q", name)
	}
	return m, nil
}
