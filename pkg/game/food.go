package game

import "github.com/leonVoyt/snake-game/pkg/config"

// randomCell picks a uniformly random cell on the board
func (w *World) randomCell() Cell {
	return Cell{
		Row: w.rng.Intn(config.Rows),
		Col: w.rng.Intn(config.Columns),
	}
}

// spawnCell chooses a cell for new food or a new obstacle. Placement is
// unchecked unless safe spawning is on, in which case occupied cells are
// rejected for a bounded number of attempts.
func (w *World) spawnCell() Cell {
	p := w.randomCell()
	if !w.safeSpawn {
		return p
	}
	for attempts := 1; attempts < config.MaxSpawnAttempts && !w.isCellEmpty(p); attempts++ {
		p = w.randomCell()
	}
	return p
}

// placeFood adds one food item
func (w *World) placeFood() {
	w.foods = append(w.foods, w.spawnCell())
}

// placeObstacle adds one wall cell; walls stay until the next game
func (w *World) placeObstacle() {
	w.chain.AddObstacle(w.spawnCell())
}

// foodAt returns the index of the food on p, or -1
func (w *World) foodAt(p Cell) int {
	for i, f := range w.foods {
		if f == p {
			return i
		}
	}
	return -1
}

// removeFood drops the food at index i
func (w *World) removeFood(i int) {
	w.foods = append(w.foods[:i], w.foods[i+1:]...)
}

// isCellEmpty checks the cell and the lead cursor cell against the body,
// food and obstacles
func (w *World) isCellEmpty(p Cell) bool {
	if p == w.chain.Cursor() {
		return false
	}
	for _, s := range w.chain.segments {
		if s.Cell == p {
			return false
		}
	}
	for _, f := range w.foods {
		if f == p {
			return false
		}
	}
	for _, o := range w.chain.obstacles {
		if o == p {
			return false
		}
	}
	return true
}
