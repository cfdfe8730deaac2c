package backend

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/openquad/go-go1/internal/config"
	"github.com/openquad/go-go1/pkg/command"
)

func newHardware(t *testing.T) (*Hardware, *command.MockPublisher) {
	t.Helper()
	pub := command.NewMockPublisher()
	h, err := NewHardware(pub, testRobotConfig())
	if err != nil {
		t.Fatalf("NewHardware: %v", err)
	}
	return h, pub
}

func forwardAxis(t *testing.T, payload []byte) float64 {
	t.Helper()
	if len(payload) != 16 {
		t.Fatalf("stick payload %d bytes, want 16", len(payload))
	}
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(payload[12:16])))
}

func TestHardware_MoveForward(t *testing.T) {
	h, pub := newHardware(t)

	if !h.Move("up", 0.3, 0.2) {
		t.Fatal("Move(up) failed")
	}

	sent := pub.PublishedOn(command.TopicStick)
	// 10 Hz over 200ms: two motion ticks plus the failsafe stop.
	if len(sent) != 3 {
		t.Fatalf("%d stick publishes, want 3", len(sent))
	}
	if got := forwardAxis(t, sent[0].Payload); math.Abs(got-0.3) > 1e-6 {
		t.Errorf("forward axis %v, want 0.3", got)
	}
	if got := forwardAxis(t, sent[len(sent)-1].Payload); got != 0 {
		t.Errorf("final forward axis %v, want failsafe 0", got)
	}
}

func TestHardware_SpeedClamped(t *testing.T) {
	h, pub := newHardware(t)

	if !h.Move("down", 9.0, 0.1) {
		t.Fatal("Move(down) failed")
	}
	sent := pub.PublishedOn(command.TopicStick)
	if len(sent) == 0 {
		t.Fatal("no stick publishes")
	}
	if got := forwardAxis(t, sent[0].Payload); got != -1.0 {
		t.Errorf("forward axis %v, want clamped -1", got)
	}
}

func TestHardware_InvalidDirectionPublishesNothing(t *testing.T) {
	h, pub := newHardware(t)

	if h.Move("backward", 0.5, 1.0) {
		t.Error("hardware accepted backward")
	}
	if n := len(pub.Published()); n != 0 {
		t.Errorf("%d publishes after rejected direction, want 0", n)
	}
}

func TestHardware_TelemetryCaching(t *testing.T) {
	h, pub := newHardware(t)

	if h.LatestTelemetry() != nil || h.LatestBMS() != nil {
		t.Fatal("telemetry non-nil before first frame")
	}

	// Motion-tier robot frame: walking, clear sensors.
	robotFrame := make([]byte, 34)
	robotFrame[28] = 2 // locomotion
	robotFrame[29] = 1 // walk
	copy(robotFrame[30:34], []byte{40, 40, 40, 40})
	pub.Deliver(command.TopicFirmware, robotFrame)

	tele := h.LatestTelemetry()
	if tele == nil {
		t.Fatal("robot frame not cached")
	}
	if tele.State != "walk" {
		t.Errorf("state %q, want walk", tele.State)
	}

	bmsFrame := make([]byte, 34)
	bmsFrame[3] = 74 // soc
	pub.Deliver(command.TopicBMS, bmsFrame)

	bms := h.LatestBMS()
	if bms == nil {
		t.Fatal("bms frame not cached")
	}
	if bms.SOC != 74 {
		t.Errorf("soc %d, want 74", bms.SOC)
	}
}

func TestHardware_ShortBMSFrameKeepsPrevious(t *testing.T) {
	h, pub := newHardware(t)

	good := make([]byte, 34)
	good[3] = 60
	pub.Deliver(command.TopicBMS, good)
	pub.Deliver(command.TopicBMS, []byte{1, 2, 3}) // undecodable

	bms := h.LatestBMS()
	if bms == nil || bms.SOC != 60 {
		t.Errorf("cached frame lost on short payload: %+v", bms)
	}
}

// Connect against a host that cannot resolve must substitute a mock
// rather than fail or block.
func TestConnect_FallsBackToMock(t *testing.T) {
	cfg := config.Default().Robot
	cfg.Host = "256.256.256.256"

	b := Connect(cfg)
	if b.Kind() != KindMock {
		t.Fatalf("backend kind %s, want mock fallback", b.Kind())
	}

	// The fallback satisfies the full move contract.
	mock := b.(*Mock)
	if !b.Move("up", 3.0, 1.0) {
		t.Error("mock fallback rejected Move(up)")
	}
	cmds := mock.Commands()
	if len(cmds) != 1 || cmds[0].Action != "forward" || cmds[0].Speed != 1.0 {
		t.Errorf("recorded commands %+v, want one forward at clamped speed 1", cmds)
	}
}
