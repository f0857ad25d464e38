package brain

import "github.com/torvund/settlemind/internal/grid"

// removeUnusedRoad tears down dead road ends starting from one flag,
// walking outward with an explicit worklist. A flag fronting a building
// is never removed; a flag with no roads is deleted; a dead-end flag
// loses its one road and the teardown continues from the far end; a
// two-road flag that only closes a small circle loses one side.
func (c *Controller) removeUnusedRoad(start grid.Point) {
	visited := make(map[grid.Point]bool)
	work := []grid.Point{c.topo.Wrap(start)}
	for len(work) > 0 {
		fp := work[len(work)-1]
		work = work[:len(work)-1]
		if visited[fp] {
			continue
		}
		visited[fp] = true
		if !c.world.OwnFlag(fp) {
			continue
		}
		if c.flagFrontsBuilding(fp) {
			continue
		}
		dirs := c.world.RoadsAtFlag(fp)
		switch {
		case len(dirs) == 0:
			c.world.DestroyFlag(fp)
			c.record("destroy_flag", fp, "orphan")
		case len(dirs) == 1:
			far, ok := c.roadEnd(fp, dirs[0])
			c.world.DestroyRoad(fp, dirs[0])
			c.world.DestroyFlag(fp)
			c.record("destroy_flag", fp, "dead end")
			if ok {
				work = append(work, far)
			}
		case len(dirs) == 2:
			if far, circle := c.flagPartOfCircle(fp, dirs); circle {
				c.world.DestroyRoad(fp, dirs[0])
				c.record("destroy_road", fp, "circle")
				// Both ends may have become dead ends; revisit them.
				delete(visited, fp)
				work = append(work, fp, far)
			}
		}
	}
}

// removeAllUnusedRoads sweeps every flag in a wide radius around pt.
func (c *Controller) removeAllUnusedRoads(pt grid.Point) {
	for _, fp := range c.world.FlagsAround(pt, 25) {
		c.removeUnusedRoad(fp)
	}
}

// flagFrontsBuilding reports whether the flag serves a building or site
// northwest of it.
func (c *Controller) flagFrontsBuilding(fp grid.Point) bool {
	b := c.buildingOf(fp)
	if _, ok := c.world.BuildingAt(b); ok {
		return true
	}
	_, ok := c.world.SiteAt(b)
	return ok
}

// roadEnd follows a road from a flag in the given direction to the flag
// at its far end.
func (c *Controller) roadEnd(fp grid.Point, dir grid.Direction) (grid.Point, bool) {
	cur := fp
	from := dir
	for steps := 0; steps < c.tun.MaxRoadLength*2; steps++ {
		cur = c.topo.Neighbor(cur, from)
		if c.world.OwnFlag(cur) {
			return cur, true
		}
		if !c.world.OnRoad(cur) {
			return grid.InvalidPoint, false
		}
		next, ok := c.roadContinuation(cur, from.Opposite())
		if !ok {
			return grid.InvalidPoint, false
		}
		from = next
	}
	return grid.InvalidPoint, false
}

// flagPartOfCircle detects a flag whose two roads close a short loop.
// The walk is a bounded flag-graph traversal, no recursion: leave by
// one road and see whether the other side comes back within a few hops.
func (c *Controller) flagPartOfCircle(fp grid.Point, dirs []grid.Direction) (grid.Point, bool) {
	const maxHops = 10
	first, ok := c.roadEnd(fp, dirs[0])
	if !ok {
		return grid.InvalidPoint, false
	}
	visited := map[grid.Point]bool{fp: true}
	frontier := []grid.Point{first}
	for hop := 0; hop < maxHops && len(frontier) > 0; hop++ {
		var next []grid.Point
		for _, cur := range frontier {
			if visited[cur] {
				continue
			}
			visited[cur] = true
			for _, d := range c.world.RoadsAtFlag(cur) {
				end, ok := c.roadEnd(cur, d)
				if !ok {
					continue
				}
				if end == fp && cur != first {
					// Came back around the other side.
					return first, true
				}
				if !visited[end] {
					next = append(next, end)
				}
			}
		}
		frontier = next
	}
	return grid.InvalidPoint, false
}
