package folio

import "time"

// frameStats accumulates per-tick metrics. Only reported when debug is on.
type frameStats struct {
	ticks     int
	simulated float64
	hits      int
	tweens    int
	drawn     int
	drawTime  time.Duration
}

// debugInterval is how much simulated time passes between reports.
const debugInterval = 1.0

func (s *frameStats) record(dt float64, hits, tweens int) {
	s.ticks++
	s.simulated += dt
	s.hits = max(s.hits, hits)
	s.tweens = max(s.tweens, tweens)
}

func (s *frameStats) recordDraw(faces int, d time.Duration) {
	s.drawn = faces
	s.drawTime += d
}

// debugLog reports and resets the stats once per debugInterval.
func (e *Experience) debugLog() {
	s := &e.stats
	if !e.debug || s.simulated < debugInterval {
		return
	}
	e.log.Infof("ticks: %d | max hits: %d | max tweens: %d | faces: %d | draw: %v",
		s.ticks, s.hits, s.tweens, s.drawn, s.drawTime)
	*s = frameStats{}
}

// debugCheckTreeDepth warns if a room nests deeper than this.
const debugMaxTreeDepth = 32

func (e *Experience) debugCheckTree() {
	if !e.debug {
		return
	}
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if depth > debugMaxTreeDepth {
			e.log.Warningf("tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(e.Root, 1)
}
