package telemetry

import (
	"encoding/binary"
	"errors"
	"testing"
)

// buildBMSFrame assembles a 34-byte battery frame with the given cell
// voltages (mV).
func buildBMSFrame(voltages [10]uint16) []byte {
	p := make([]byte, bmsFrameLen)
	p[0], p[1] = 1, 2 // version 1.2
	p[2] = 5          // status
	p[3] = 87         // soc
	binary.LittleEndian.PutUint32(p[4:8], uint32(0xFFFFF448)) // -3000 mA
	binary.LittleEndian.PutUint16(p[8:10], 42)                // cycles
	copy(p[10:14], []byte{30, 31, 32, 33})
	for i, v := range voltages {
		binary.LittleEndian.PutUint16(p[14+2*i:16+2*i], v)
	}
	return p
}

func TestDecodeBMS(t *testing.T) {
	voltages := [10]uint16{4150, 4151, 4148, 4152, 4149, 4150, 4151, 4147, 4153, 4150}
	b, err := DecodeBMS(buildBMSFrame(voltages))
	if err != nil {
		t.Fatalf("DecodeBMS: %v", err)
	}

	if b.Version != "1.2" {
		t.Errorf("version %q, want 1.2", b.Version)
	}
	if b.Status != 5 || b.SOC != 87 {
		t.Errorf("status/soc %d/%d, want 5/87", b.Status, b.SOC)
	}
	if b.Current != -3000 {
		t.Errorf("current %d, want -3000", b.Current)
	}
	if b.Cycle != 42 {
		t.Errorf("cycle %d, want 42", b.Cycle)
	}
	if b.Temps != [4]uint8{30, 31, 32, 33} {
		t.Errorf("temps %v", b.Temps)
	}
	if b.CellVoltages != voltages {
		t.Errorf("cell voltages %v, want %v", b.CellVoltages, voltages)
	}
}

func TestDecodeBMS_TotalVoltageIsSum(t *testing.T) {
	voltages := [10]uint16{100, 200, 300, 400, 500, 600, 700, 800, 900, 1000}
	b, err := DecodeBMS(buildBMSFrame(voltages))
	if err != nil {
		t.Fatalf("DecodeBMS: %v", err)
	}
	if got := b.TotalVoltage(); got != 5500 {
		t.Errorf("total voltage %d, want 5500", got)
	}
}

func TestDecodeBMS_ShortPayload(t *testing.T) {
	for _, n := range []int{0, 1, 33} {
		_, err := DecodeBMS(make([]byte, n))
		if !errors.Is(err, ErrShortPayload) {
			t.Errorf("%d bytes: got %v, want ErrShortPayload", n, err)
		}
	}
}

func TestDecodeBMS_ExactMinimum(t *testing.T) {
	if _, err := DecodeBMS(make([]byte, bmsFrameLen)); err != nil {
		t.Errorf("34-byte frame rejected: %v", err)
	}
}
