package telemetry

import (
	"math"
	"testing"
)

func TestDistanceToWarning(t *testing.T) {
	cases := []struct {
		distance uint8
		want     float64
	}{
		{31, 0},
		{100, 0},
		{9, 1},
		{0, 1},
		{30, 0.2},
		{10, 1.0},
		{20, 0.7}, // 0.2 + 0.8*10/20
	}
	for _, tc := range cases {
		got := DistanceToWarning(tc.distance)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("DistanceToWarning(%d) = %v, want %v", tc.distance, got, tc.want)
		}
	}
}

// buildRobotFrame assembles an identification-tier status frame.
func buildRobotFrame(length int) []byte {
	p := make([]byte, length)
	if length >= robotIdentLen {
		p[0] = 4 // Go1
		p[1] = 3 // EDU
		p[2], p[3], p[4], p[5] = 11, 22, 33, 44
		p[36], p[37], p[38] = 1, 19, 2
		p[39], p[40], p[41] = 3, 8, 1
	}
	if length >= robotMinLen {
		for i := 0; i < robotTempsLen && robotTempsOffset+i < length; i++ {
			p[robotTempsOffset+i] = uint8(40 + i)
		}
	}
	if length >= robotMotionLen {
		p[28] = modeLocomotion
		p[29] = 1                              // walk
		copy(p[30:34], []byte{35, 20, 9, 25}) // front, left, right, back
	}
	return p
}

func TestDecodeRobot_FullFrame(t *testing.T) {
	r := DecodeRobot(buildRobotFrame(robotIdentLen))

	if r.Product != "Go1_EDU" {
		t.Errorf("product %q, want Go1_EDU", r.Product)
	}
	if r.Serial != "11-22-33[44]" {
		t.Errorf("serial %q", r.Serial)
	}
	if r.HardwareVersion != "1.19.2" {
		t.Errorf("hardware version %q", r.HardwareVersion)
	}
	if r.SoftwareVersion != "3.8.1" {
		t.Errorf("software version %q", r.SoftwareVersion)
	}
	if r.State != "walk" {
		t.Errorf("state %q, want walk", r.State)
	}
	if r.Temps[0] != 40 || r.Temps[19] != 59 {
		t.Errorf("temps %v", r.Temps)
	}

	wantWarn := [4]float64{0, 0.7, 1, 0.2 + 0.8*5/20}
	for i := range wantWarn {
		if math.Abs(r.DistanceWarning[i]-wantWarn[i]) > 1e-9 {
			t.Errorf("warning[%d] = %v, want %v", i, r.DistanceWarning[i], wantWarn[i])
		}
	}
}

func TestDecodeRobot_GaitStates(t *testing.T) {
	cases := []struct {
		mode, gait uint8
		want       string
	}{
		{modeLocomotion, 1, "walk"},
		{modeLocomotion, 2, "run"},
		{modeLocomotion, 3, "climb"},
		{modeLocomotion, 7, "invalid"}, // unknown gait
		{1, 1, "invalid"},              // not in locomotion mode
	}
	for _, tc := range cases {
		p := buildRobotFrame(robotMotionLen)
		p[28], p[29] = tc.mode, tc.gait
		if got := DecodeRobot(p).State; got != tc.want {
			t.Errorf("mode=%d gait=%d: state %q, want %q", tc.mode, tc.gait, got, tc.want)
		}
	}
}

func TestDecodeRobot_PartialFrames(t *testing.T) {
	// Below the temperature tier nothing is populated.
	r := DecodeRobot(make([]byte, 10))
	if r.State != "invalid" {
		t.Errorf("state %q, want invalid", r.State)
	}
	if r.Temps != ([20]uint8{}) {
		t.Errorf("temps populated from short frame: %v", r.Temps)
	}

	// Temperature tier only: no motion or identification fields.
	r = DecodeRobot(buildRobotFrame(robotMinLen))
	if r.Mode != 0 || r.GaitType != 0 {
		t.Errorf("motion fields populated at 28 bytes: mode=%d gait=%d", r.Mode, r.GaitType)
	}
	if r.Product != "" || r.Serial != "" {
		t.Errorf("identification populated at 28 bytes: %q %q", r.Product, r.Serial)
	}

	// Motion tier: still no identification.
	r = DecodeRobot(buildRobotFrame(robotMotionLen))
	if r.State != "walk" {
		t.Errorf("state %q, want walk", r.State)
	}
	if r.Product != "" {
		t.Errorf("identification populated at 34 bytes: %q", r.Product)
	}
}

func TestDecodeRobot_SubFieldGates(t *testing.T) {
	// Unknown product code spoils only the product sub-field.
	p := buildRobotFrame(robotIdentLen)
	p[0] = 9
	r := DecodeRobot(p)
	if r.Product != "" {
		t.Errorf("product %q for unknown code, want empty", r.Product)
	}
	if r.Serial == "" || r.SoftwareVersion == "" {
		t.Error("sibling sub-fields dropped with the product")
	}

	// 255 sentinel disables the serial and hardware version fields.
	p = buildRobotFrame(robotIdentLen)
	p[2] = 255
	p[36] = 255
	r = DecodeRobot(p)
	if r.Serial != "" {
		t.Errorf("serial %q decoded past 255 sentinel", r.Serial)
	}
	if r.HardwareVersion != "" {
		t.Errorf("hardware version %q decoded past 255 sentinel", r.HardwareVersion)
	}
	if r.SoftwareVersion != "3.8.1" {
		t.Errorf("software version %q, want 3.8.1", r.SoftwareVersion)
	}
}
