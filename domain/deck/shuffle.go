package deck

import (
	"crypto/cipher"
	"encoding/binary"
	"log/slog"
	"math/rand/v2"

	"go.dedis.ch/kyber/v4/suites"
)

// Source supplies uniform integers in [0, n) to the shuffle.
type Source interface {
	IntN(n int) int
}

var suite suites.Suite = suites.MustFind("Ed25519")

// cryptoSource draws from the random stream of the Ed25519 suite, which is
// backed by the operating system CSPRNG.
type cryptoSource struct {
	stream cipher.Stream
	buf    [8]byte
}

// NewCryptoSource returns the Source meant for real stakes.
func NewCryptoSource() Source {
	return &cryptoSource{stream: suite.RandomStream()}
}

// IntN uses rejection sampling so that every value is equally likely.
func (s *cryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("deck: IntN called with non-positive n")
	}
	un := uint64(n)
	threshold := -un % un
	for {
		clear(s.buf[:])
		s.stream.XORKeyStream(s.buf[:], s.buf[:])
		x := binary.LittleEndian.Uint64(s.buf[:])
		if x >= threshold {
			return int(x % un)
		}
	}
}

// NewSeededSource returns a reproducible PCG source. It is not safe against
// an adversary who can observe dealt cards, so it is only meant for demos,
// replays and tests; its use is always logged.
func NewSeededSource(seed uint64, logger *slog.Logger) Source {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("using non-cryptographic shuffle source", "seed", seed)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes cards in place with the Fisher–Yates algorithm.
func Shuffle(cards []Card, src Source) {
	for i := len(cards) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
