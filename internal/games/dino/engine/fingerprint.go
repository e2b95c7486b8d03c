package engine

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Fingerprint hashes every gameplay field of s. Equal seeds and inputs give
// equal fingerprints.
func Fingerprint(s *State) uint64 {
	h := xxh3.New()
	var buf [8]byte
	f := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	i := func(v int) { f(float64(v)) }
	b := func(v bool) {
		if v {
			i(1)
		} else {
			i(0)
		}
	}

	i(int(s.Status))
	r := s.Runner
	f(r.X)
	f(r.Y)
	f(r.Width)
	f(r.Height)
	f(r.VelocityY)
	b(r.IsJumping)
	b(r.Crouching)
	i(r.RunFrame)
	f(r.FrameTime)
	i(int(r.Character))

	i(len(s.Obstacles))
	for _, o := range s.Obstacles {
		f(o.X)
		f(o.Y)
		f(o.Width)
		f(o.Height)
		i(int(o.Size))
		i(o.Variant)
		i(o.Group)
	}
	i(len(s.Clouds))
	for _, c := range s.Clouds {
		f(c.X)
		f(c.Y)
		f(c.Width)
		f(c.Height)
		f(c.Speed)
	}

	f(s.Score)
	f(s.ScrollSpeed)
	f(s.GroundY)
	f(s.Clock)
	f(s.LastObstacleSpawnTime)
	f(s.GameStartTime)
	i(s.NextGroup)
	i(s.nextBoost)
	return h.Sum64()
}
