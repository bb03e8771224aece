package random

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"sync"
)

// Number of bytes buffered per source. Draws are 8 bytes, so one refill
// covers a few dozen draws before touching the OS again.
const sourceReadBufferBytes = 256

// entropySource wraps the environment's entropy device behind a read
// buffer. A source is owned by exactly one goroutine between acquire and
// release; it is never read concurrently.
type entropySource struct {
	reader *bufio.Reader
}

var sourcePool = sync.Pool{
	New: func() interface{} {
		return &entropySource{reader: bufio.NewReaderSize(rand.Reader, sourceReadBufferBytes)}
	},
}

// acquireSource hands back an entropy source for exclusive use by the
// calling goroutine. Sources are created lazily on first demand and
// reclaimed by the runtime once idle; there is no explicit teardown API.
func acquireSource() *entropySource {
	return sourcePool.Get().(*entropySource)
}

func releaseSource(s *entropySource) {
	sourcePool.Put(s)
}

// read fills buf from the entropy device. An exhausted or absent device is
// not recoverable for security-sensitive randomness, so this never returns
// an error and never falls back to a non-secure generator.
func (s *entropySource) read(buf []byte) {
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		panic(fmt.Sprintf("random: entropy source read failed: %v", err))
	}
}

// uniformUint64 returns a uniform value in [0, span] inclusive. Rejection
// sampling against a leading-zeros mask keeps the draw free of modulo bias,
// and only as many bytes as the span requires are consumed from the device.
func (s *entropySource) uniformUint64(span uint64) uint64 {
	if span == 0 {
		return 0
	}
	zeros := bits.LeadingZeros64(span)
	mask := ^uint64(0) >> zeros
	nbytes := (64 - zeros + 7) / 8
	for {
		var b [8]byte
		s.read(b[:nbytes])
		v := binary.LittleEndian.Uint64(b[:]) & mask
		if v <= span {
			return v
		}
	}
}
