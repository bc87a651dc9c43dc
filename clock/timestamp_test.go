package clock

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeStamp_OrderIsWaveFirst(t *testing.T) {
	assert.True(t, TimeStamp{Wave: 1, Tick: 9999}.Before(TimeStamp{Wave: 2, Tick: 0}))
	assert.True(t, TimeStamp{Wave: 2, Tick: 10}.Before(TimeStamp{Wave: 2, Tick: 11}))
	assert.False(t, TimeStamp{Wave: 2, Tick: 11}.Before(TimeStamp{Wave: 2, Tick: 11}))
}

func TestTimeStamp_CompareIsTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		a := TimeStamp{Wave: rng.Int31n(20), Tick: rng.Int31n(100)}
		b := TimeStamp{Wave: rng.Int31n(20), Tick: rng.Int31n(100)}

		assert.Equal(t, -b.Compare(a), a.Compare(b))

		if a.Compare(b) == 0 {
			assert.True(t, a.Equal(b))
		} else {
			assert.True(t, a.Before(b) != b.Before(a))
		}
	}
}

func TestTimeStamp_AddStaysInWave(t *testing.T) {
	ts := TimeStamp{Wave: 3, Tick: 100}

	assert.Equal(t, TimeStamp{Wave: 3, Tick: 350}, ts.Add(250))
}

func TestTimeStamp_IsZero(t *testing.T) {
	assert.True(t, TimeStamp{}.IsZero())
	assert.False(t, TimeStamp{Tick: 1}.IsZero())
	assert.False(t, TimeStamp{Wave: 1}.IsZero())
}

func TestTimeStamp_String(t *testing.T) {
	assert.Equal(t, "wave 4 tick 1200", TimeStamp{Wave: 4, Tick: 1200}.String())
}
