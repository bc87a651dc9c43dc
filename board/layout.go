// Package board knows the game's memory layout and decodes live board
// state: sun, waves, scene, and the zombie and plant arrays. It is the
// game-specific layer over the generic accessor; everything here is
// offsets, not logic.
package board

import "github.com/lawnlab/lawnscript/clock"

// A Layout carries the addresses and structure offsets of one game build.
// The values must stay consistent with the running build: a mismatch yields
// silent garbage reads, so callers should cross-check read values against
// plausibility bounds.
type Layout struct {
	// Root is the offset of the game-root pointer from the module base.
	Root uint32

	// Game-root field offsets.
	Board  uint32
	GameUI uint32

	// Board field offsets.
	Sun        uint32
	GameClock  uint32
	Scene      uint32
	Wave       uint32
	TotalWaves uint32
	Paused     uint32

	ZombieArray uint32
	ZombieMax   uint32
	PlantArray  uint32
	PlantMax    uint32

	ZombieStride uint32
	PlantStride  uint32
}

// Default matches the 1.0.0.1051 build of the game (image base 0x400000,
// root pointer at the classic 0x6A9EC0).
var Default = Layout{
	Root:   0x2A9EC0,
	Board:  0x768,
	GameUI: 0x7FC,

	Sun:        0x5560,
	GameClock:  0x5568,
	Scene:      0x554C,
	Wave:       0x557C,
	TotalWaves: 0x5564,
	Paused:     0x164,

	ZombieArray: 0x90,
	ZombieMax:   0x94,
	PlantArray:  0xAC,
	PlantMax:    0xB0,

	ZombieStride: 0x15C,
	PlantStride:  0x14C,
}

// Zombie structure offsets.
const (
	zOffRow  = 0x1C
	zOffType = 0x24
	zOffX    = 0x2C
	zOffY    = 0x30
	zOffHP   = 0xC8
	zOffDead = 0xEC
)

// Plant structure offsets.
const (
	pOffRow   = 0x1C
	pOffCol   = 0x28
	pOffType  = 0x24
	pOffHP    = 0x40
	pOffDead  = 0x141
	pOffAwake = 0x48
)

// The in-game UI state that means a level is being played.
const uiInGame = 3

// ClockLayout derives the clock source configuration from the board layout.
func (l Layout) ClockLayout() clock.Layout {
	return clock.Layout{
		RootPointer: l.Root,
		BoardChain:  []uint32{l.Board},
		WaveOffset:  l.Wave,
		TickOffset:  l.GameClock,
	}
}
