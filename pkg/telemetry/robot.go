package telemetry

import "fmt"

// Robot status frame layout tiers. Each tier is gated by payload
// length: a short frame degrades to a partial record, it never fails.
const (
	robotTempsOffset = 8
	robotTempsLen    = 20
	robotMinLen      = robotTempsOffset + robotTempsLen // 28
	robotMotionLen   = 34                               // mode, gait, obstacles
	robotIdentLen    = 44                               // product, serial, versions
)

// modeLocomotion is the mode code the firmware reports while a gait is
// active; only then does the gait type map to a named state.
const modeLocomotion = 2

// RobotState is a decoded robot status frame.
type RobotState struct {
	Product         string // "<name>_<model>", e.g. "Go1_EDU"
	Serial          string
	HardwareVersion string
	SoftwareVersion string

	Temps    [20]uint8 // per-motor temperature, Celsius
	Mode     uint8
	GaitType uint8
	State    string // "walk", "run", "climb" or "invalid"

	// Obstacles holds the raw front/left/right/back ultrasonic
	// distances; DistanceWarning maps each to a [0,1] urgency scalar.
	Obstacles       [4]uint8
	DistanceWarning [4]float64
}

// Indices into Obstacles and DistanceWarning.
const (
	Front = iota
	Left
	Right
	Back
)

var productNames = map[uint8]string{
	1: "Laikago",
	2: "Aliengo",
	3: "A1",
	4: "Go1",
	5: "B1",
}

var productModels = map[uint8]string{
	1: "AIR",
	2: "PRO",
	3: "EDU",
	4: "PC",
	5: "XX",
}

// DistanceToWarning converts an ultrasonic distance to a warning scalar
// in [0,1]: 0 beyond 30, 1 below 10, linear in between.
func DistanceToWarning(distance uint8) float64 {
	switch {
	case distance > 30:
		return 0
	case distance < 10:
		return 1
	default:
		return 0.2 + (0.8*float64(30-distance))/20
	}
}

// DecodeRobot decodes a robot status frame from the firmware/version
// topic. It never fails: fields beyond the payload length keep their
// zero values, and State stays "invalid" unless a locomotion gait is
// reported.
func DecodeRobot(payload []byte) *RobotState {
	r := &RobotState{State: "invalid"}

	if len(payload) >= robotMinLen {
		copy(r.Temps[:], payload[robotTempsOffset:robotTempsOffset+robotTempsLen])
	}

	if len(payload) >= robotMotionLen {
		r.Mode = payload[28]
		r.GaitType = payload[29]
		copy(r.Obstacles[:], payload[30:34])

		if r.Mode == modeLocomotion {
			switch r.GaitType {
			case 1:
				r.State = "walk"
			case 2:
				r.State = "run"
			case 3:
				r.State = "climb"
			}
		}
		for i, d := range r.Obstacles {
			r.DistanceWarning[i] = DistanceToWarning(d)
		}
	}

	if len(payload) >= robotIdentLen {
		name, nameOK := productNames[payload[0]]
		model, modelOK := productModels[payload[1]]
		// An unrecognized code spoils only the product sub-field.
		if nameOK && modelOK {
			r.Product = fmt.Sprintf("%s_%s", name, model)
		}
		if payload[2] < 255 {
			r.Serial = fmt.Sprintf("%d-%d-%d[%d]",
				payload[2], payload[3], payload[4], payload[5])
		}
		if payload[36] < 255 {
			r.HardwareVersion = fmt.Sprintf("%d.%d.%d",
				payload[36], payload[37], payload[38])
		}
		r.SoftwareVersion = fmt.Sprintf("%d.%d.%d",
			payload[39], payload[40], payload[41])
	}

	return r
}
