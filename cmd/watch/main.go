// watch tails a running simulator's scene stream from the terminal.
//
// It connects to the dashboard websocket and prints each scene event
// as it arrives, which is handy when no browser is around:
//
//	go run ./cmd/watch -url ws://localhost:8090/ws/scene
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/openquad/go-go1/internal/log"
	"github.com/openquad/go-go1/pkg/web"
)

func main() {
	url := flag.String("url", "ws://localhost:8090/ws/scene", "scene websocket URL")
	flag.Parse()
	log.Init("info")

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		log.Error("dial failed", "url", *url, "error", err)
		os.Exit(1)
	}
	defer conn.Close()
	fmt.Println("watching", *url)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			log.Info("stream closed", "error", err)
			return
		}

		var ev web.SceneEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			log.Warn("bad scene event", "error", err)
			continue
		}
		printEvent(ev)
	}
}

func printEvent(ev web.SceneEvent) {
	switch ev.Type {
	case "clear":
		fmt.Println("scene cleared")
	case "grid":
		fmt.Printf("grid %dx%d\n", ev.Width, ev.Height)
	case "walls":
		fmt.Printf("walls: %v\n", ev.Walls)
	case "robot":
		if ev.Robot != nil {
			fmt.Printf("robot at %s\n", ev.Robot.String())
		}
	case "trail":
		if ev.From != nil && ev.To != nil {
			fmt.Printf("trail %s -> %s\n", ev.From.String(), ev.To.String())
		}
	default:
		fmt.Printf("event %q\n", ev.Type)
	}
}
