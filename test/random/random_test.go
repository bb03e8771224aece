package random_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entropyd/entropyd/src/random"
)

func TestFill(t *testing.T) {
	assert := assert.New(t)

	// an empty buffer is a no-op
	random.Fill(nil)
	random.Fill([]byte{})

	for _, size := range []int{1, 16, 32, 1024} {
		buf := make([]byte, size)
		random.Fill(buf)
		assert.Equal(size, len(buf))
	}
}

func TestFillProducesDistinctBuffers(t *testing.T) {
	assert := assert.New(t)

	// 32 bytes of entropy colliding twice is not a realistic outcome
	first := make([]byte, 32)
	second := make([]byte, 32)
	random.Fill(first)
	random.Fill(second)
	assert.NotEqual(first, second)
}

func TestByteCoversValueSpace(t *testing.T) {
	assert := assert.New(t)

	seen := map[byte]bool{}
	for i := 0; i < 1000; i++ {
		seen[random.Byte()] = true
	}
	// 1000 uniform draws over 256 values leave ~245 distinct in expectation
	assert.Greater(len(seen), 128)
}

func TestNextInRangeBounds(t *testing.T) {
	assert := assert.New(t)

	for i := 0; i < 1000; i++ {
		value := random.NextInRange[uint64](100, 200)
		assert.GreaterOrEqual(value, uint64(100))
		assert.LessOrEqual(value, uint64(200))
	}
}

func TestNextInRangeDegenerate(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint64(42), random.NextInRange[uint64](42, 42))
	assert.Equal(uint8(0), random.NextInRange[uint8](0, 0))
	assert.Equal(uint32(math.MaxUint32), random.NextInRange[uint32](math.MaxUint32, math.MaxUint32))
}

func TestNextInRangeFullWidth(t *testing.T) {
	// the full width of the type must be a legal range, the sampling mask
	// degenerates to all ones here
	for i := 0; i < 100; i++ {
		random.NextInRange[uint64](0, math.MaxUint64)
		random.NextInRange[uint8](0, math.MaxUint8)
	}
}

func TestNextInRangeHitsBothEndpointsOfTinyRange(t *testing.T) {
	assert := assert.New(t)

	seen := map[uint64]bool{}
	for i := 0; i < 200; i++ {
		seen[random.NextInRange[uint64](7, 8)] = true
	}
	assert.True(seen[7])
	assert.True(seen[8])
	assert.Equal(2, len(seen))
}

func TestNextInRangeInvertedRangePanics(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() { random.NextInRange[uint64](10, 9) })
	assert.Panics(func() { random.NextInRange[uint8](1, 0) })
}

func TestConcurrentDraws(t *testing.T) {
	assert := assert.New(t)

	wg := sync.WaitGroup{}
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 64)
			for i := 0; i < 100; i++ {
				random.Fill(buf)
				value := random.NextInRange[uint32](10, 20)
				assert.GreaterOrEqual(value, uint32(10))
				assert.LessOrEqual(value, uint32(20))
			}
		}()
	}
	wg.Wait()
}
