package brain

import (
	"github.com/torvund/settlemind/internal/gamedata"
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// jobState tracks a job through its lifecycle. Terminal states are
// jobDone and jobFailed; failed jobs are dropped silently.
type jobState uint8

const (
	jobInitial jobState = iota
	jobSearching
	jobPlacing
	jobConnecting
	jobDone
	jobFailed
)

// buildJob places one building: search a site, place it, connect its
// flag. A fixed job skips the search and builds exactly at `at`.
type buildJob struct {
	bt      gameworld.BuildingType
	around  grid.Point
	at      grid.Point
	fixed   bool
	state   jobState
	retries int
}

func (j *buildJob) done() bool { return j.state == jobDone || j.state == jobFailed }

// step advances the job by one state transition. Every transition
// re-validates against the live world; anything that no longer holds
// fails the job without error.
func (j *buildJob) step(c *Controller) {
	switch j.state {
	case jobInitial:
		j.state = jobSearching
	case jobSearching:
		if j.fixed {
			j.state = jobPlacing
			return
		}
		pos := c.findPositionForBuildingAround(j.bt, j.around)
		if !pos.Valid() {
			j.state = jobFailed
			return
		}
		j.at = pos
		j.state = jobPlacing
	case jobPlacing:
		if !j.siteStillGood(c) {
			j.state = jobFailed
			return
		}
		if !c.world.PlaceBuildingSite(j.at, j.bt) {
			c.nodes.MarkFailed(j.at)
			j.state = jobFailed
			return
		}
		c.record("place_site", j.at, j.bt.String())
		if j.bt == gameworld.Farm || j.bt == gameworld.Charburner {
			// Reserve the field space so later placements keep clear.
			for _, pt := range c.topo.PointsInRadius(j.at, 2) {
				c.nodes.At(pt).Farmed = true
			}
		}
		c.updateNodesAround(j.at, 2)
		j.state = jobConnecting
	case jobConnecting:
		j.connect(c)
	}
}

func (j *buildJob) siteStillGood(c *Controller) bool {
	if !c.world.OwnTerritory(j.at) {
		return false
	}
	return c.world.BuildQuality(j.at).Fits(gamedata.BuildingSize[j.bt])
}

func (j *buildJob) connect(c *Controller) {
	flag := c.flagOf(j.at)
	if _, ok := c.world.SiteAt(j.at); !ok {
		// Site vanished between ticks; nothing left to connect.
		j.state = jobFailed
		return
	}
	if c.world.ConnectedToRoadNet(flag) {
		j.state = jobDone
		return
	}
	route, ok := c.world.RoadPathToNetwork(flag, c.tun.MaxRoadLength)
	if ok && c.world.BuildRoad(flag, route) {
		c.record("build_road", flag, j.bt.String())
		j.state = jobDone
		return
	}
	j.retries++
	if j.retries >= c.tun.ConnectRetries {
		// Unconnectable site: tear it down rather than strand a worker.
		c.world.DestroyBuilding(j.at)
		c.record("destroy_building", j.at, "unconnectable "+j.bt.String())
		c.nodes.MarkFailed(flag)
		j.state = jobFailed
	}
}

// connectJob attaches an existing flag to the road network. Used for
// repaired sites, founded colonies and failed road retries.
type connectJob struct {
	flag    grid.Point
	state   jobState
	retries int
}

func (j *connectJob) done() bool { return j.state == jobDone || j.state == jobFailed }

func (j *connectJob) step(c *Controller) {
	if !c.world.OwnFlag(j.flag) {
		j.state = jobFailed
		return
	}
	if c.world.ConnectedToRoadNet(j.flag) {
		j.state = jobDone
		return
	}
	route, ok := c.world.RoadPathToNetwork(j.flag, c.tun.MaxRoadLength)
	if ok && c.world.BuildRoad(j.flag, route) {
		c.record("build_road", j.flag, "reconnect")
		j.state = jobDone
		return
	}
	j.retries++
	if j.retries >= c.tun.ConnectRetries {
		// Give up: remove the stranded flag (and with it any site it fronts).
		building := c.buildingOf(j.flag)
		if _, ok := c.world.SiteAt(building); ok {
			c.world.DestroyBuilding(building)
			c.record("destroy_building", building, "unconnectable site")
		} else {
			c.world.DestroyFlag(j.flag)
			c.record("destroy_flag", j.flag, "unconnectable")
		}
		c.nodes.MarkFailed(j.flag)
		j.state = jobFailed
	}
}
