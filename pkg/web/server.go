// Package web serves the simulator dashboard: a fiber app that pushes
// scene events to browser viewers over websockets. The Server is the
// concrete render surface of the simulator.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/openquad/go-go1/internal/log"
	"github.com/openquad/go-go1/pkg/grid"
	"github.com/openquad/go-go1/pkg/hub"
	"github.com/openquad/go-go1/pkg/render"
)

var _ render.Surface = (*Server)(nil)

// Server hosts the dashboard and broadcasts scene events.
type Server struct {
	app  *fiber.App
	port string

	sceneHub *hub.Hub

	mu     sync.RWMutex
	engine *grid.Engine

	// OnViewerConnect runs whenever a viewer attaches, so the scene
	// can be repainted for them.
	OnViewerConnect func()
}

// NewServer creates the dashboard server for the given engine.
func NewServer(port string, engine *grid.Engine) *Server {
	s := &Server{
		port:     port,
		sceneHub: hub.New("scene"),
		engine:   engine,
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-go1 simulator",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Get("/", s.handleIndex)
	app.Get("/api/state", s.handleState)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/scene", websocket.New(s.handleSceneWS))

	s.app = app
	return s
}

// Start runs the hub and listens. onReady fires once the listener is
// up; the simulator uses it to complete the render-ready signal.
func (s *Server) Start(onReady func()) error {
	go s.sceneHub.Run()

	if onReady != nil {
		s.app.Hooks().OnListen(func(fiber.ListenData) error {
			onReady()
			return nil
		})
	}

	log.Info("simulator dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync runs Start in a goroutine.
func (s *Server) StartAsync(onReady func()) {
	go func() {
		if err := s.Start(onReady); err != nil {
			log.Error("dashboard server stopped", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// ViewerCount returns the number of connected dashboard viewers.
func (s *Server) ViewerCount() int {
	return s.sceneHub.ClientCount()
}

func (s *Server) handleSceneWS(c *websocket.Conn) {
	client := hub.NewClient(s.sceneHub, c)
	if s.OnViewerConnect != nil {
		s.OnViewerConnect()
	}
	client.Run()
}

// stateResponse is the REST snapshot of the simulation.
type stateResponse struct {
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Position grid.Position     `json:"position"`
	Stopped  bool              `json:"stopped"`
	Walls    []grid.Position   `json:"walls"`
	MoveLog  []grid.MoveRecord `json:"move_log"`
}

func (s *Server) handleState(c *fiber.Ctx) error {
	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()

	w, h := engine.Size()
	resp := stateResponse{
		Width:    w,
		Height:   h,
		Position: engine.Position(),
		Stopped:  engine.Stopped(),
		Walls:    sortedWalls(engine.Walls()),
		MoveLog:  engine.MoveLog(),
	}
	return c.JSON(resp)
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(indexHTML)
}

// After schedules fn on a timer goroutine; together with the hub this
// forms the simulator's render context.
func (s *Server) After(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}
