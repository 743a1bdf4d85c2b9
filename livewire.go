package segment

import (
	"container/heap"
	"math"
	"time"
)

// stepCost is the minimum per-step cost added to every graph edge. It
// keeps the search from wandering along zero-cost edge ridges and makes
// path length a tiebreaker between equally strong edges.
const stepCost = 0.05

// corridorRadius is the half-width, in pixels, of the search corridor
// a finer pyramid level inherits from the coarser level's path.
const corridorRadius = 3

// TraceLiveWire finds the cheapest boundary path between two normalized
// points over the pyramid's edge-cost field, so the returned polyline
// snaps to detected image edges.
//
// The search is uniform-cost (Dijkstra) over the pixel grid, 8- or
// 4-connected per WithDiagonals. It runs unrestricted at the coarsest
// pyramid level only; every finer level searches just a corridor around
// the coarser result, which keeps per-call latency interactive for
// per-pointer-move retracing.
//
// TraceLiveWire never fails: out-of-range inputs are clamped to [0, 1],
// start == end yields a single-point path, and a nil or empty pyramid
// degrades to the straight segment. The first and last returned points
// always land on the clamped start and end pixels.
func TraceLiveWire(p *CostPyramid, start, end Point, opts ...Option) []Point {
	o := applyOptions(opts)
	start = start.Clamp()
	end = end.Clamp()

	base := p.Base()
	if base == nil {
		if start == end {
			return []Point{start}
		}
		return []Point{start, end}
	}

	began := time.Now()
	coarse := p.Level(p.NumLevels() - 1)
	sx, sy := pixelOnLevel(start, coarse)
	ex, ey := pixelOnLevel(end, coarse)

	path := dijkstra(coarse, sx, sy, ex, ey, nil, o.allowDiagonals)
	for lvl := p.NumLevels() - 2; lvl >= 0; lvl-- {
		level := p.Level(lvl)
		corridor := markCorridor(level, path)
		sx, sy = pixelOnLevel(start, level)
		ex, ey = pixelOnLevel(end, level)
		path = dijkstra(level, sx, sy, ex, ey, corridor, o.allowDiagonals)
	}

	pts := make([]Point, len(path))
	for i, idx := range path {
		pts[i] = PtFromPixel(int(idx)%base.Width, int(idx)/base.Width, base.Width, base.Height)
	}
	if len(pts) == 0 {
		pts = []Point{start, end}
	}
	Logger().Debug("live wire traced",
		"points", len(pts), "elapsed", time.Since(began))
	if start == end {
		return pts[:1]
	}
	return pts
}

// pixelOnLevel maps a normalized point to pixel coordinates on a
// pyramid level.
func pixelOnLevel(pt Point, l *CostLevel) (int, int) {
	return pt.Pixel(l.Width, l.Height)
}

// markCorridor doubles the coarse path onto the finer level and returns
// a bitmask of pixels within corridorRadius of it. The finer search is
// confined to this mask.
func markCorridor(l *CostLevel, coarse []int32) []bool {
	if len(coarse) == 0 {
		return nil
	}
	allowed := make([]bool, l.Width*l.Height)
	// The coarse level is half this level's resolution, so each coarse
	// pixel scales by 2. Width at the coarse level is reconstructed
	// from this level's.
	coarseW := max(1, l.Width/2)
	for _, idx := range coarse {
		cx := int(idx) % coarseW * 2
		cy := int(idx) / coarseW * 2
		for dy := -corridorRadius; dy <= corridorRadius; dy++ {
			y := cy + dy
			if y < 0 || y >= l.Height {
				continue
			}
			for dx := -corridorRadius; dx <= corridorRadius; dx++ {
				x := cx + dx
				if x < 0 || x >= l.Width {
					continue
				}
				allowed[y*l.Width+x] = true
			}
		}
	}
	return allowed
}

// pqNode is one open-list entry in the grid search.
type pqNode struct {
	idx  int32
	dist float32
}

// pathQueue is a binary min-heap over accumulated path cost.
type pathQueue []pqNode

func (q pathQueue) Len() int           { return len(q) }
func (q pathQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q pathQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *pathQueue) Push(x any) {
	*q = append(*q, x.(pqNode))
}
func (q *pathQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// dijkstra runs a uniform-cost search from (sx, sy) to (ex, ey) over
// the level's pixel grid. Edge weight is the mean cost of the two
// endpoint pixels scaled by step length, plus stepCost. A non-nil
// allowed mask confines the search to corridor pixels (the start and
// goal are always admitted). Returns the pixel-index path from start to
// goal inclusive, or the straight segment if the goal is unreachable.
func dijkstra(l *CostLevel, sx, sy, ex, ey int, allowed []bool, diagonals bool) []int32 {
	w, h := l.Width, l.Height
	startIdx := int32(sy*w + sx)
	goalIdx := int32(ey*w + ex)
	if startIdx == goalIdx {
		return []int32{startIdx}
	}

	dist := make([]float32, w*h)
	for i := range dist {
		dist[i] = float32(math.Inf(1))
	}
	prev := make([]int32, w*h)
	for i := range prev {
		prev[i] = -1
	}
	dist[startIdx] = 0

	q := pathQueue{{idx: startIdx, dist: 0}}
	var neighbors [8][3]int
	nn := gridNeighbors(&neighbors, diagonals)

	for q.Len() > 0 {
		cur := heap.Pop(&q).(pqNode)
		if cur.idx == goalIdx {
			break
		}
		if cur.dist > dist[cur.idx] {
			continue // stale entry
		}
		cx, cy := int(cur.idx)%w, int(cur.idx)/w
		curCost := l.Costs[cur.idx]

		for i := 0; i < nn; i++ {
			nx, ny := cx+neighbors[i][0], cy+neighbors[i][1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			nIdx := int32(ny*w + nx)
			if allowed != nil && !allowed[nIdx] && nIdx != goalIdx {
				continue
			}
			step := float32(neighbors[i][2]) / 100
			alt := cur.dist + (curCost+l.Costs[nIdx])/2*step + stepCost*step
			if alt < dist[nIdx] {
				dist[nIdx] = alt
				prev[nIdx] = cur.idx
				heap.Push(&q, pqNode{idx: nIdx, dist: alt})
			}
		}
	}

	if prev[goalIdx] == -1 {
		return lineIndices(w, sx, sy, ex, ey)
	}

	var path []int32
	for at := goalIdx; at != -1; at = prev[at] {
		path = append(path, at)
	}
	// Reverse into start-to-goal order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// gridNeighbors fills buf with (dx, dy, length*100) offsets and returns
// how many are in use.
func gridNeighbors(buf *[8][3]int, diagonals bool) int {
	axial := [4][3]int{{1, 0, 100}, {-1, 0, 100}, {0, 1, 100}, {0, -1, 100}}
	copy(buf[:4], axial[:])
	if !diagonals {
		return 4
	}
	diag := [4][3]int{{1, 1, 141}, {1, -1, 141}, {-1, 1, 141}, {-1, -1, 141}}
	copy(buf[4:], diag[:])
	return 8
}

// lineIndices rasterizes the straight segment between two pixels with
// Bresenham's algorithm. Used as the unreachable-goal fallback so the
// tracer always returns a usable path.
func lineIndices(w, x0, y0, x1, y1 int) []int32 {
	var out []int32
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		out = append(out, int32(y0*w+x0))
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
