package thicket

import "go.uber.org/zap"

// debugLog logs the stats of one physics tick.
func (w *World) debugLog(stats StepStats) {
	if !w.debug {
		return
	}
	w.logger.Debug("physics tick",
		zap.Int("bodies", stats.Bodies),
		zap.Int("pairs", stats.PairsTested),
		zap.Int("manifolds", stats.Manifolds),
		zap.Duration("took", stats.Duration),
	)
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func (s *Scene) debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = s.Node(p.parent) {
		depth++
	}
	if depth > debugMaxTreeDepth {
		s.logger.Warn("tree depth exceeds threshold",
			zap.String("node", n.Name),
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth),
		)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func (s *Scene) debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		s.logger.Warn("child count exceeds threshold",
			zap.String("node", n.Name),
			zap.Int("children", len(n.children)),
			zap.Int("threshold", debugMaxChildCount),
		)
	}
}
