package reveal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowNativeBoundaries(t *testing.T) {
	t.Parallel()

	// value 0: nothing revealed
	for i := 0; i < 10; i++ {
		assert.False(t, ShowNative(0, 10, i), "index %d", i)
	}

	// value 100: everything revealed
	for i := 0; i < 10; i++ {
		assert.True(t, ShowNative(100, 10, i), "index %d", i)
	}
}

func TestShowNativeEmptyPage(t *testing.T) {
	t.Parallel()

	for _, value := range []int{0, 50, 100} {
		assert.False(t, ShowNative(value, 0, 0))
	}
}

func TestShowNativeIsPrefix(t *testing.T) {
	t.Parallel()

	// Once a sentence is hidden, every later sentence is hidden too.
	for value := 0; value <= 100; value += 5 {
		seenHidden := false
		for i := 0; i < 8; i++ {
			shown := ShowNative(value, 8, i)
			if seenHidden {
				assert.False(t, shown, "value %d index %d", value, i)
			}
			if !shown {
				seenHidden = true
			}
		}
	}
}

func TestRevealedCountClosedForm(t *testing.T) {
	t.Parallel()

	// With a strict < against the real-valued threshold, the revealed prefix
	// has ceil(threshold) sentences, capped at n.
	for n := 0; n <= 20; n++ {
		for value := 0; value <= 100; value++ {
			want := int(math.Ceil(float64(value) / 100 * float64(n)))
			if want > n {
				want = n
			}
			assert.Equal(t, want, RevealedCount(value, n), "value %d n %d", value, n)
		}
	}
}

func TestRevealedCountMonotonic(t *testing.T) {
	t.Parallel()

	prev := 0
	for value := 0; value <= 100; value++ {
		count := RevealedCount(value, 13)
		assert.GreaterOrEqual(t, count, prev)
		prev = count
	}
}

func TestClampAndSteps(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Clamp(-5))
	assert.Equal(t, 100, Clamp(250))
	assert.Equal(t, 50, Clamp(50))

	assert.Equal(t, 100, Increase(100))
	assert.Equal(t, 100, Increase(98))
	assert.Equal(t, 55, Increase(50))
	assert.Equal(t, 0, Decrease(0))
	assert.Equal(t, 0, Decrease(3))
	assert.Equal(t, 45, Decrease(50))
}

func TestShowNativeDeterministic(t *testing.T) {
	t.Parallel()

	first := ShowNative(37, 11, 4)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ShowNative(37, 11, 4))
	}
}
