package thicket

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// StateHash fingerprints the simulation state of the tree: every node's name,
// local position, rotation and velocity, in depth-first order. Two scenes built
// the same way and stepped the same way hash equal, which makes it a cheap
// determinism check for replays and parallel runs.
func (s *Scene) StateHash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	putFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	s.walk(s.root, func(n *Node) bool {
		_, _ = d.WriteString(n.Name)
		putFloat(n.Transform.Position.X)
		putFloat(n.Transform.Position.Y)
		putFloat(n.Transform.Rotation)
		putFloat(n.Transform.Velocity.X)
		putFloat(n.Transform.Velocity.Y)
		return true
	})
	return d.Sum64()
}
