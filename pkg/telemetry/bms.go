// Package telemetry decodes the fixed-layout binary frames the Go1
// publishes on its telemetry topics. Decoding is pure: no state, no I/O.
// Short robot-status frames degrade to partial records; only the BMS
// frame has a hard minimum length.
package telemetry

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortPayload is returned when a payload is below the minimum
// length of its frame layout.
var ErrShortPayload = errors.New("telemetry payload too short")

// bmsFrameLen is the fixed length of a battery state frame.
const bmsFrameLen = 34

// BMSState is a decoded battery management frame.
type BMSState struct {
	Version      string     // "major.minor"
	Status       uint8      //
	SOC          uint8      // state of charge, 0-100
	Current      int32      // mA, negative while discharging
	Cycle        uint16     // charge cycle count
	Temps        [4]uint8   // per-cell temperature, Celsius
	CellVoltages [10]uint16 // mV per cell
}

// TotalVoltage is the pack voltage in mV, always recomputed from the
// cell voltages.
func (b *BMSState) TotalVoltage() uint32 {
	var sum uint32
	for _, v := range b.CellVoltages {
		sum += uint32(v)
	}
	return sum
}

// DecodeBMS decodes a battery frame from the bms/state topic.
// The payload must carry at least 34 bytes.
func DecodeBMS(payload []byte) (*BMSState, error) {
	if len(payload) < bmsFrameLen {
		return nil, fmt.Errorf("bms frame %d bytes, need %d: %w",
			len(payload), bmsFrameLen, ErrShortPayload)
	}

	b := &BMSState{
		Version: fmt.Sprintf("%d.%d", payload[0], payload[1]),
		Status:  payload[2],
		SOC:     payload[3],
		Current: int32(binary.LittleEndian.Uint32(payload[4:8])),
		Cycle:   binary.LittleEndian.Uint16(payload[8:10]),
	}
	copy(b.Temps[:], payload[10:14])
	for i := range b.CellVoltages {
		b.CellVoltages[i] = binary.LittleEndian.Uint16(payload[14+2*i : 16+2*i])
	}
	return b, nil
}
