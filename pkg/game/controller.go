package game

import (
	"strings"
	"sync"
)

// CommandKind enumerates the session commands a front-end can issue
type CommandKind int

const (
	CmdDirection CommandKind = iota
	CmdPause
	CmdResume
	CmdTogglePause
	CmdNewGame
	CmdEndGame
	CmdMode
)

// Command is one input request
type Command struct {
	Kind CommandKind `json:"kind"`
	Dir  Direction   `json:"dir,omitempty"`
	Mode Mode        `json:"mode,omitempty"`
}

// Controller buffers input written from another goroutine until the
// ticking goroutine applies it. Direction requests share a single slot
// (last write wins); every other command is queued in order.
type Controller struct {
	mu      sync.Mutex
	dir     Direction
	hasDir  bool
	pending []Command
}

// NewController returns an empty controller
func NewController() *Controller {
	return &Controller{}
}

// SetDirection overwrites the pending direction
func (c *Controller) SetDirection(d Direction) {
	c.mu.Lock()
	c.dir = d
	c.hasDir = true
	c.mu.Unlock()
}

// Push records a command. Direction commands go to the direction slot.
func (c *Controller) Push(cmd Command) {
	if cmd.Kind == CmdDirection {
		c.SetDirection(cmd.Dir)
		return
	}
	c.mu.Lock()
	c.pending = append(c.pending, cmd)
	c.mu.Unlock()
}

// Apply drains queued commands into w, then the pending direction, and
// returns them in the order applied. It must run on the goroutine that
// ticks w, before the tick.
func (c *Controller) Apply(w *World) []Command {
	c.mu.Lock()
	cmds := c.pending
	c.pending = nil
	dir, hasDir := c.dir, c.hasDir
	c.hasDir = false
	c.mu.Unlock()

	for _, cmd := range cmds {
		switch cmd.Kind {
		case CmdPause:
			w.Pause()
		case CmdResume:
			w.Resume()
		case CmdTogglePause:
			w.TogglePause()
		case CmdNewGame:
			w.NewGame()
		case CmdEndGame:
			w.EndGame()
		case CmdMode:
			w.SetMode(cmd.Mode)
		}
	}

	if hasDir {
		w.SetDirection(dir)
		cmds = append(cmds, Command{Kind: CmdDirection, Dir: dir})
	}
	return cmds
}

// ParseAction maps a client action name to a command
func ParseAction(action string) (Command, bool) {
	switch action {
	case "up":
		return Command{Kind: CmdDirection, Dir: Up}, true
	case "right":
		return Command{Kind: CmdDirection, Dir: Right}, true
	case "down":
		return Command{Kind: CmdDirection, Dir: Down}, true
	case "left":
		return Command{Kind: CmdDirection, Dir: Left}, true
	case "pause":
		return Command{Kind: CmdPause}, true
	case "resume":
		return Command{Kind: CmdResume}, true
	case "toggle_pause":
		return Command{Kind: CmdTogglePause}, true
	case "new", "restart":
		return Command{Kind: CmdNewGame}, true
	case "end", "exit":
		return Command{Kind: CmdEndGame}, true
	}

	if name, ok := strings.CutPrefix(action, "mode_"); ok {
		if m, ok := ParseMode(name); ok {
			return Command{Kind: CmdMode, Mode: m}, true
		}
	}
	return Command{}, false
}
