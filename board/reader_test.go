package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnlab/lawnscript/clock"
	"github.com/lawnlab/lawnscript/mem"
	"github.com/lawnlab/lawnscript/proc"
)

const (
	testBase     = uint64(0x400000)
	testGameRoot = uint64(0x100000)
	testBoard    = uint64(0x200000)
	testZombies  = uint64(0x300000)
	testPlants   = uint64(0x380000)
)

// newTestBoard plants a minimal in-game memory image: module base points to
// the game root, the game root points to the board, and the UI state says a
// level is being played.
func newTestBoard(t *testing.T) (*Reader, *mem.Accessor) {
	t.Helper()

	sess := proc.NewFakeSession(proc.NewBufferMemory(1<<23), testBase)
	acc := mem.NewAccessor(sess)

	require.NoError(t, acc.WriteAddress(testBase+uint64(Default.Root), testGameRoot))
	require.NoError(t, acc.WriteAddress(testGameRoot+uint64(Default.Board), testBoard))
	require.NoError(t, acc.WriteInt32(testGameRoot+uint64(Default.GameUI), uiInGame))

	return NewReader(acc, Default), acc
}

func putZombie(t *testing.T, acc *mem.Accessor, i int, z Zombie, dead bool) {
	t.Helper()

	addr := testZombies + uint64(i)*uint64(Default.ZombieStride)
	require.NoError(t, acc.WriteInt32(addr+zOffRow, z.Row))
	require.NoError(t, acc.WriteInt32(addr+zOffType, z.Type))
	require.NoError(t, acc.WriteFloat32(addr+zOffX, z.X))
	require.NoError(t, acc.WriteFloat32(addr+zOffY, z.Y))
	require.NoError(t, acc.WriteInt32(addr+zOffHP, z.HP))

	if dead {
		require.NoError(t, acc.WriteUint8(addr+zOffDead, 1))
	}
}

func TestReader_InGame(t *testing.T) {
	r, acc := newTestBoard(t)

	inGame, err := r.InGame()
	require.NoError(t, err)
	assert.True(t, inGame)

	require.NoError(t, acc.WriteInt32(testGameRoot+uint64(Default.GameUI), 1))

	inGame, err = r.InGame()
	require.NoError(t, err)
	assert.False(t, inGame)
}

func TestReader_BoardGoneOutsideLevel(t *testing.T) {
	r, acc := newTestBoard(t)

	require.NoError(t, acc.WriteAddress(testGameRoot+uint64(Default.Board), 0))

	_, err := r.Sun()
	assert.ErrorIs(t, err, mem.ErrChainBroken)
}

func TestReader_BoardCounters(t *testing.T) {
	r, acc := newTestBoard(t)

	require.NoError(t, acc.WriteInt32(testBoard+uint64(Default.Sun), 150))
	require.NoError(t, acc.WriteInt32(testBoard+uint64(Default.Wave), 7))
	require.NoError(t, acc.WriteInt32(testBoard+uint64(Default.TotalWaves), 20))
	require.NoError(t, acc.WriteInt32(testBoard+uint64(Default.GameClock), 4321))
	require.NoError(t, acc.WriteInt32(testBoard+uint64(Default.Scene), int32(ScenePool)))

	sun, err := r.Sun()
	require.NoError(t, err)
	assert.Equal(t, int32(150), sun)

	wave, err := r.Wave()
	require.NoError(t, err)
	assert.Equal(t, int32(7), wave)

	total, err := r.TotalWaves()
	require.NoError(t, err)
	assert.Equal(t, int32(20), total)

	tick, err := r.GameClock()
	require.NoError(t, err)
	assert.Equal(t, int32(4321), tick)

	scene, err := r.CurrentScene()
	require.NoError(t, err)
	assert.Equal(t, ScenePool, scene)
	assert.Equal(t, "Pool", scene.String())
}

func TestReader_SetSunClamps(t *testing.T) {
	r, _ := newTestBoard(t)

	require.NoError(t, r.SetSun(99999))
	sun, err := r.Sun()
	require.NoError(t, err)
	assert.Equal(t, int32(9990), sun)

	require.NoError(t, r.SetSun(-50))
	sun, err = r.Sun()
	require.NoError(t, err)
	assert.Equal(t, int32(0), sun)

	require.NoError(t, r.SetSun(425))
	sun, err = r.Sun()
	require.NoError(t, err)
	assert.Equal(t, int32(425), sun)
}

func TestReader_Paused(t *testing.T) {
	r, acc := newTestBoard(t)

	paused, err := r.Paused()
	require.NoError(t, err)
	assert.False(t, paused)

	require.NoError(t, acc.WriteUint8(testBoard+uint64(Default.Paused), 1))

	paused, err = r.Paused()
	require.NoError(t, err)
	assert.True(t, paused)
}

func TestReader_ZombiesSkipDeadSlots(t *testing.T) {
	r, acc := newTestBoard(t)

	require.NoError(t,
		acc.WriteAddress(testBoard+uint64(Default.ZombieArray), testZombies))
	require.NoError(t,
		acc.WriteInt32(testBoard+uint64(Default.ZombieMax), 3))

	putZombie(t, acc, 0, Zombie{Row: 2, Type: 0, X: 780, Y: 150, HP: 270}, false)
	putZombie(t, acc, 1, Zombie{Row: 4, Type: 23, X: 800, Y: 330, HP: 3000}, true)
	putZombie(t, acc, 2, Zombie{Row: 0, Type: 2, X: 650, Y: 50, HP: 370}, false)

	zombies, err := r.Zombies()
	require.NoError(t, err)

	require.Len(t, zombies, 2)
	assert.Equal(t, 0, zombies[0].Index)
	assert.Equal(t, int32(2), zombies[0].Row)
	assert.Equal(t, float32(780), zombies[0].X)
	assert.Equal(t, 2, zombies[1].Index)
	assert.Equal(t, int32(370), zombies[1].HP)
}

func TestReader_Plants(t *testing.T) {
	r, acc := newTestBoard(t)

	require.NoError(t,
		acc.WriteAddress(testBoard+uint64(Default.PlantArray), testPlants))
	require.NoError(t,
		acc.WriteInt32(testBoard+uint64(Default.PlantMax), 1))

	require.NoError(t, acc.WriteInt32(testPlants+pOffRow, 1))
	require.NoError(t, acc.WriteInt32(testPlants+pOffCol, 3))
	require.NoError(t, acc.WriteInt32(testPlants+pOffType, 8))
	require.NoError(t, acc.WriteInt32(testPlants+pOffHP, 300))
	require.NoError(t, acc.WriteUint32(testPlants+pOffAwake, 1))

	plants, err := r.Plants()
	require.NoError(t, err)

	require.Len(t, plants, 1)
	assert.Equal(t, Plant{Index: 0, Row: 1, Col: 3, Type: 8, HP: 300, Awake: true},
		plants[0])
}

func TestLayout_ClockLayoutFeedsReader(t *testing.T) {
	_, acc := newTestBoard(t)

	require.NoError(t, acc.WriteInt32(testBoard+uint64(Default.Wave), 9))
	require.NoError(t, acc.WriteInt32(testBoard+uint64(Default.GameClock), 777))

	cr := clock.NewReader(acc, Default.ClockLayout())

	assert.Equal(t, clock.TimeStamp{Wave: 9, Tick: 777}, cr.CurrentTime())
}
