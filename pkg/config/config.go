package config

import "time"

// Board dimensions (fixed)
const (
	Rows      = 20
	Columns   = 20
	BlockSize = 32 // world units per cell
)

// Chain settings
const (
	DefaultLength = 3
	StepDuration  = 0.1  // seconds per logical step
	StepEpsilon   = 0.01 // a step fires once less than this remains
	SpeedUpFactor = 0.9  // step duration multiplier per growth in Speed mode
)

// Spawn settings
const (
	InitialFood = 5
	// Attempts before safe spawning gives up and accepts an occupied cell
	MaxSpawnAttempts = 100
)

// Front-end loop settings
const (
	BaseTick    = time.Second / 60 // one frame (~60 FPS)
	MaxFrameGap = 250 * time.Millisecond
)

// Persistence and server
const (
	DatabasePath  = "data/snake.db"
	ServerAddr    = ":8080"
	StaticDir     = "web/static"
	LeaderboardN  = 10
	SendQueueSize = 16
)

// Emoji characters for rendering
const (
	CharEmpty    = "  " // Two spaces to match emoji width
	CharWall     = "⬜"
	CharHead     = "🟢"
	CharBody     = "🟩"
	CharFood     = "🐭"
	CharObstacle = "🛑"
	CharCrash    = "💥"
)
