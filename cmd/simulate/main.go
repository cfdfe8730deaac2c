// simulate runs the grid simulator with the browser dashboard.
//
// It walks a scripted move sequence once the first viewer can see the
// scene, then keeps serving until interrupted:
//
//	go run ./cmd/simulate
//	go run ./cmd/simulate -script up,up,right,right -maze maze.txt
//	open http://localhost:8090
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/openquad/go-go1/internal/config"
	"github.com/openquad/go-go1/internal/log"
	"github.com/openquad/go-go1/pkg/robot"
	"github.com/openquad/go-go1/pkg/web"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	port := flag.String("port", "", "dashboard port (overrides config)")
	script := flag.String("script", "up,right,up,right,up", "comma-separated move sequence")
	mazePath := flag.String("maze", "", "maze layout file ('.' floor, '#' wall, 'S' start)")
	stepPause := flag.Duration("pause", time.Second, "pause between scripted moves")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.WebPort = *port
	}
	log.Init(cfg.LogLevel)

	r, err := robot.NewSimulated(cfg, nil)
	if err != nil {
		log.Error("simulator setup failed", "error", err)
		os.Exit(1)
	}
	defer r.Close()

	if *mazePath != "" {
		layout, err := readLayout(*mazePath)
		if err != nil {
			log.Error("maze load failed", "path", *mazePath, "error", err)
			os.Exit(1)
		}
		if err := r.LoadMaze(layout); err != nil {
			log.Error("maze rejected", "error", err)
			os.Exit(1)
		}
	}

	server := web.NewServer(cfg.WebPort, r.Engine())
	r.AttachRenderer(server)
	server.OnViewerConnect = r.RenderSync().Redraw
	server.StartAsync(r.RenderSync().MarkReady)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := r.Start(ctx); err != nil {
		cancel()
		log.Error("dashboard never became ready", "error", err)
		os.Exit(1)
	}
	cancel()
	log.Info("dashboard ready", "url", "http://localhost:"+cfg.WebPort)

	go runScript(r, *script, *stepPause)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		log.Error("shutdown", "error", err)
	}
}

func runScript(r *robot.Robot, script string, pause time.Duration) {
	for _, step := range strings.Split(script, ",") {
		direction := strings.TrimSpace(step)
		if direction == "" {
			continue
		}
		time.Sleep(pause)
		ok := r.Move(direction)
		log.Info("scripted move", "direction", direction, "ok", ok,
			"position", r.Position().String())
	}
	log.Info("script finished", "moves", len(r.MoveLog()))
}

func readLayout(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var layout []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if line != "" {
			layout = append(layout, line)
		}
	}
	return layout, scanner.Err()
}
