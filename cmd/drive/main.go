// drive is the interactive console for the physical Go1.
//
// It connects to the robot's MQTT broker (falling back to the
// recording mock when the robot is unreachable) and reads commands
// from stdin:
//
//	up | down | left | right   step in that direction
//	mode <name>                switch locomotion mode (walk, run, climb, ...)
//	led <r> <g> <b>            set the head LED color
//	status                     print the latest telemetry and battery frames
//	quit
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/openquad/go-go1/internal/config"
	"github.com/openquad/go-go1/internal/log"
	"github.com/openquad/go-go1/pkg/backend"
	"github.com/openquad/go-go1/pkg/robot"
	"github.com/openquad/go-go1/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	host := flag.String("host", "", "robot broker host (overrides config)")
	speed := flag.Float64("speed", 0, "stick magnitude for all moves (0 keeps config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Robot.Host = *host
	}
	if *speed > 0 {
		cfg.Robot.MoveSpeed = *speed
		cfg.Robot.TurnSpeed = *speed
	}
	log.Init(cfg.LogLevel)

	r := robot.NewHardware(cfg)
	defer r.Close()

	if r.Kind() == backend.KindMock {
		fmt.Println("robot unreachable, driving the mock (commands are recorded, not sent)")
	} else {
		fmt.Println("connected to", cfg.Robot.Host)
	}
	fmt.Println("type a command (up/down/left/right, mode, led, status, quit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		// Mode names are case-sensitive ("standUp"); only the command
		// word is normalized.
		switch strings.ToLower(fields[0]) {
		case "up", "down", "left", "right":
			if ok := r.Move(fields[0]); !ok {
				fmt.Println("move failed")
			}
		case "mode":
			if len(fields) != 2 {
				fmt.Println("usage: mode <name>")
				continue
			}
			if err := r.ChangeMode(fields[1]); err != nil {
				fmt.Println("mode:", err)
			}
		case "led":
			rgb, err := parseRGB(fields[1:])
			if err != nil {
				fmt.Println("led:", err)
				continue
			}
			if err := r.ChangeLED(rgb[0], rgb[1], rgb[2]); err != nil {
				fmt.Println("led:", err)
			}
		case "status":
			printStatus(r)
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func parseRGB(args []string) ([3]uint8, error) {
	var rgb [3]uint8
	if len(args) != 3 {
		return rgb, fmt.Errorf("usage: led <r> <g> <b>")
	}
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return rgb, fmt.Errorf("%q is not a 0-255 value", arg)
		}
		rgb[i] = uint8(v)
	}
	return rgb, nil
}

func printStatus(r *robot.Robot) {
	state := r.LatestTelemetry()
	if state == nil {
		fmt.Println("no telemetry received yet")
	} else {
		fmt.Printf("state: %s (%s), obstacles F=%d L=%d R=%d B=%d\n",
			state.Product, state.State,
			state.Obstacles[telemetry.Front], state.Obstacles[telemetry.Left],
			state.Obstacles[telemetry.Right], state.Obstacles[telemetry.Back])
	}

	bms := r.LatestBMS()
	if bms == nil {
		fmt.Println("no battery data received yet")
		return
	}
	fmt.Printf("battery: %d%%, %.2fV, %d cycles\n",
		bms.SOC, float64(bms.TotalVoltage())/1000, bms.Cycle)
}
