package board

import (
	"encoding/binary"
	"math"

	"github.com/lawnlab/lawnscript/mem"
)

// Scene is the level's stage type.
type Scene int32

const (
	SceneDay Scene = iota
	SceneNight
	ScenePool
	SceneFog
	SceneRoof
	SceneMoonNight
)

func (s Scene) String() string {
	switch s {
	case SceneDay:
		return "Day"
	case SceneNight:
		return "Night"
	case ScenePool:
		return "Pool"
	case SceneFog:
		return "Fog"
	case SceneRoof:
		return "Roof"
	case SceneMoonNight:
		return "MoonNight"
	}

	return "Unknown"
}

// A Zombie is a snapshot of one live zombie.
type Zombie struct {
	Index int
	Row   int32
	Type  int32
	X     float32
	Y     float32
	HP    int32
}

// A Plant is a snapshot of one live plant.
type Plant struct {
	Index int
	Row   int32
	Col   int32
	Type  int32
	HP    int32
	Awake bool
}

// A Reader decodes board state through an accessor.
type Reader struct {
	acc    *mem.Accessor
	layout Layout
}

// NewReader creates a Reader over acc using layout.
func NewReader(acc *mem.Accessor, layout Layout) *Reader {
	return &Reader{acc: acc, layout: layout}
}

func (r *Reader) root() uint64 {
	return r.acc.Session().Base() + uint64(r.layout.Root)
}

// GameRoot returns the address of the game-root object, or ErrChainBroken
// when the game has not finished loading.
func (r *Reader) GameRoot() (uint64, error) {
	return r.acc.Resolve(r.root(), []uint32{0})
}

// Board returns the address of the board object. The board only exists
// while a level is loaded; outside a level the chain is broken.
func (r *Reader) Board() (uint64, error) {
	return r.acc.Resolve(r.root(), []uint32{r.layout.Board, 0})
}

// InGame reports whether a level is currently being played.
func (r *Reader) InGame() (bool, error) {
	root, err := r.GameRoot()
	if err != nil {
		return false, err
	}

	ui, err := r.acc.ReadInt32(root + uint64(r.layout.GameUI))
	if err != nil {
		return false, err
	}

	return ui == uiInGame, nil
}

func (r *Reader) boardInt32(off uint32) (int32, error) {
	b, err := r.Board()
	if err != nil {
		return 0, err
	}

	return r.acc.ReadInt32(b + uint64(off))
}

// Sun returns the current sun amount.
func (r *Reader) Sun() (int32, error) {
	return r.boardInt32(r.layout.Sun)
}

// SetSun overwrites the sun amount. The game clamps its own displays to
// [0, 9990], so values are clamped to that range here as well.
func (r *Reader) SetSun(n int32) error {
	if n < 0 {
		n = 0
	}
	if n > 9990 {
		n = 9990
	}

	b, err := r.Board()
	if err != nil {
		return err
	}

	return r.acc.WriteInt32(b+uint64(r.layout.Sun), n)
}

// Wave returns the current wave number.
func (r *Reader) Wave() (int32, error) {
	return r.boardInt32(r.layout.Wave)
}

// TotalWaves returns the number of waves in the level.
func (r *Reader) TotalWaves() (int32, error) {
	return r.boardInt32(r.layout.TotalWaves)
}

// GameClock returns the board's tick counter.
func (r *Reader) GameClock() (int32, error) {
	return r.boardInt32(r.layout.GameClock)
}

// CurrentScene returns the level's scene type.
func (r *Reader) CurrentScene() (Scene, error) {
	v, err := r.boardInt32(r.layout.Scene)
	return Scene(v), err
}

// Paused reports whether the game is paused.
func (r *Reader) Paused() (bool, error) {
	b, err := r.Board()
	if err != nil {
		return false, err
	}

	return r.acc.ReadBool(b + uint64(r.layout.Paused))
}

// Zombies snapshots every live zombie on the board. Dead slots in the
// array are skipped.
func (r *Reader) Zombies() ([]Zombie, error) {
	b, err := r.Board()
	if err != nil {
		return nil, err
	}

	arr, err := r.acc.ReadAddress(b + uint64(r.layout.ZombieArray))
	if err != nil {
		return nil, err
	}

	max, err := r.acc.ReadInt32(b + uint64(r.layout.ZombieMax))
	if err != nil {
		return nil, err
	}

	stride := uint64(r.layout.ZombieStride)
	zombies := make([]Zombie, 0, max)

	for i := int32(0); i < max; i++ {
		raw, err := r.acc.ReadBytes(arr+uint64(i)*stride, int(stride))
		if err != nil {
			return nil, err
		}

		if raw[zOffDead] != 0 {
			continue
		}

		zombies = append(zombies, Zombie{
			Index: int(i),
			Row:   int32(binary.LittleEndian.Uint32(raw[zOffRow:])),
			Type:  int32(binary.LittleEndian.Uint32(raw[zOffType:])),
			X:     math.Float32frombits(binary.LittleEndian.Uint32(raw[zOffX:])),
			Y:     math.Float32frombits(binary.LittleEndian.Uint32(raw[zOffY:])),
			HP:    int32(binary.LittleEndian.Uint32(raw[zOffHP:])),
		})
	}

	return zombies, nil
}

// Plants snapshots every live plant on the board.
func (r *Reader) Plants() ([]Plant, error) {
	b, err := r.Board()
	if err != nil {
		return nil, err
	}

	arr, err := r.acc.ReadAddress(b + uint64(r.layout.PlantArray))
	if err != nil {
		return nil, err
	}

	max, err := r.acc.ReadInt32(b + uint64(r.layout.PlantMax))
	if err != nil {
		return nil, err
	}

	stride := uint64(r.layout.PlantStride)
	plants := make([]Plant, 0, max)

	for i := int32(0); i < max; i++ {
		raw, err := r.acc.ReadBytes(arr+uint64(i)*stride, int(stride))
		if err != nil {
			return nil, err
		}

		if raw[pOffDead] != 0 {
			continue
		}

		plants = append(plants, Plant{
			Index: int(i),
			Row:   int32(binary.LittleEndian.Uint32(raw[pOffRow:])),
			Col:   int32(binary.LittleEndian.Uint32(raw[pOffCol:])),
			Type:  int32(binary.LittleEndian.Uint32(raw[pOffType:])),
			HP:    int32(binary.LittleEndian.Uint32(raw[pOffHP:])),
			Awake: binary.LittleEndian.Uint32(raw[pOffAwake:]) != 0,
		})
	}

	return plants, nil
}
