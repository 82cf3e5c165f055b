package input

import (
	"github.com/eiannone/keyboard"
	"github.com/leonVoyt/snake-game/pkg/game"
)

// KeyboardHandler handles keyboard input
type KeyboardHandler struct {
	inputChan chan KeyInput
	done      chan struct{}
}

// KeyInput represents a keyboard input event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan KeyInput),
		done:      make(chan struct{}),
	}
}

// Start begins listening for keyboard input
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case h.inputChan <- KeyInput{Char: char, Key: key}:
			case <-h.done:
				return
			}
		}
	}()

	return nil
}

// Stop stops the keyboard handler
func (h *KeyboardHandler) Stop() {
	close(h.done)
	keyboard.Close()
}

// GetInputChan returns the input channel
func (h *KeyboardHandler) GetInputChan() <-chan KeyInput {
	return h.inputChan
}

// ParseDirection parses a key input into a direction
func ParseDirection(input KeyInput) (dir game.Direction, isValid bool) {
	// Handle arrow keys
	switch input.Key {
	case keyboard.KeyArrowUp:
		return game.Up, true
	case keyboard.KeyArrowDown:
		return game.Down, true
	case keyboard.KeyArrowLeft:
		return game.Left, true
	case keyboard.KeyArrowRight:
		return game.Right, true
	}

	// Handle WASD keys
	switch input.Char {
	case 'w', 'W':
		return game.Up, true
	case 's', 'S':
		return game.Down, true
	case 'a', 'A':
		return game.Left, true
	case 'd', 'D':
		return game.Right, true
	}

	return game.Up, false
}

// ParseMode maps the number keys 1-4 to a game mode
func ParseMode(input KeyInput) (game.Mode, bool) {
	if input.Char < '1' || input.Char > '4' {
		return game.ModeClassic, false
	}
	return game.Mode(input.Char - '1'), true
}

// IsQuit checks if the input is a quit command
func IsQuit(input KeyInput) bool {
	return input.Char == 'q' || input.Char == 'Q' ||
		input.Key == keyboard.KeyEsc || input.Key == keyboard.KeyCtrlC
}

// IsRestart checks if the input is a restart command
func IsRestart(input KeyInput) bool {
	return input.Char == 'r' || input.Char == 'R'
}

// IsPause checks if the input is a pause command
func IsPause(input KeyInput) bool {
	return input.Char == 'p' || input.Char == 'P' || input.Char == ' ' || input.Key == keyboard.KeySpace
}

// IsEndGame checks if the input ends the current session
func IsEndGame(input KeyInput) bool {
	return input.Char == 'x' || input.Char == 'X'
}

// ToCommand translates a key into a session command. Quit is not a
// session command and must be checked with IsQuit first.
func ToCommand(input KeyInput) (game.Command, bool) {
	if dir, ok := ParseDirection(input); ok {
		return game.Command{Kind: game.CmdDirection, Dir: dir}, true
	}
	if mode, ok := ParseMode(input); ok {
		return game.Command{Kind: game.CmdMode, Mode: mode}, true
	}
	switch {
	case IsPause(input):
		return game.Command{Kind: game.CmdTogglePause}, true
	case IsRestart(input):
		return game.Command{Kind: game.CmdNewGame}, true
	case IsEndGame(input):
		return game.Command{Kind: game.CmdEndGame}, true
	}
	return game.Command{}, false
}
