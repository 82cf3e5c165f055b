package input

import (
	"github.com/eiannone/keyboard"
	"github.com/gdamore/tcell/v2"
)

// FromTcell converts a tcell key event into the KeyInput used by the
// keyboard handler so both front-ends share one key map.
func FromTcell(ev *tcell.EventKey) KeyInput {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyInput{Key: keyboard.KeyArrowUp}
	case tcell.KeyDown:
		return KeyInput{Key: keyboard.KeyArrowDown}
	case tcell.KeyLeft:
		return KeyInput{Key: keyboard.KeyArrowLeft}
	case tcell.KeyRight:
		return KeyInput{Key: keyboard.KeyArrowRight}
	case tcell.KeyEscape:
		return KeyInput{Key: keyboard.KeyEsc}
	case tcell.KeyCtrlC:
		return KeyInput{Key: keyboard.KeyCtrlC}
	case tcell.KeyEnter:
		return KeyInput{Key: keyboard.KeyEnter}
	case tcell.KeyRune:
		return KeyInput{Char: ev.Rune()}
	}
	return KeyInput{}
}
