package brain

import (
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// addBuildJob appends a build job to the back of the queue. Duplicate
// suppression is by type and anchor.
func (c *Controller) addBuildJob(bt gameworld.BuildingType, around grid.Point, front bool) {
	for _, j := range c.buildJobs {
		if j.bt == bt && j.around == around {
			return
		}
	}
	job := &buildJob{bt: bt, around: around}
	if front {
		c.pushFrontBuild(job)
		return
	}
	c.buildJobs = append(c.buildJobs, job)
}

func (c *Controller) pushFrontBuild(j *buildJob) {
	c.buildJobs = append([]*buildJob{j}, c.buildJobs...)
}

// addConnectJob queues a flag for road-net attachment, deduplicated.
func (c *Controller) addConnectJob(flag grid.Point) {
	for _, j := range c.connectJobs {
		if j.flag == flag {
			return
		}
	}
	c.connectJobs = append(c.connectJobs, &connectJob{flag: flag})
}

func (c *Controller) pushFrontConnect(j *connectJob) {
	for _, existing := range c.connectJobs {
		if existing.flag == j.flag {
			return
		}
	}
	c.connectJobs = append([]*connectJob{j}, c.connectJobs...)
}

// addMilitaryJob queues the military building best suited to the spot:
// bigger buildings toward dense borderland, huts for quiet expansion.
func (c *Controller) addMilitaryJob(around grid.Point) {
	bt := gameworld.Barracks
	border := c.resMaps[gameworld.ResourceBorderland].Value(around)
	switch {
	case border > 40:
		bt = gameworld.Fortress
	case border > 25:
		bt = gameworld.Watchtower
	case border > 12:
		bt = gameworld.Guardhouse
	}
	c.addBuildJob(bt, around, false)
}

// queuedJobs counts pending build jobs for a type, so demand gating can
// include work in flight.
func (c *Controller) queuedJobs(bt gameworld.BuildingType) int {
	n := 0
	for _, j := range c.buildJobs {
		if j.bt == bt {
			n++
		}
	}
	return n
}

// jobQuota scales job throughput with the settlement: one slot per
// storehouse plus one per military building, hard-capped.
func (c *Controller) jobQuota() int {
	quota := len(c.world.Storehouses()) + len(c.world.MilitaryBuildings())
	if quota > c.tun.JobQuotaCap {
		quota = c.tun.JobQuotaCap
	}
	if quota < 1 {
		quota = 1
	}
	return quota
}

// executeJobs spends up to quota state transitions. Connect jobs run
// first: a stranded flag blocks everything behind it. Terminal jobs are
// dropped as they finish. A step that leaves a job's state unchanged
// means the world blocked it (no road path yet); the job keeps its
// queue slot and waits for a later tick instead of burning its retries
// against a world that cannot change mid-tick.
func (c *Controller) executeJobs(quota int) {
	for i := 0; quota > 0 && i < len(c.connectJobs); {
		j := c.connectJobs[i]
		before := j.state
		j.step(c)
		quota--
		if j.done() {
			c.connectJobs = append(c.connectJobs[:i], c.connectJobs[i+1:]...)
			continue
		}
		if j.state == before {
			i++
		}
	}
	for i := 0; quota > 0 && i < len(c.buildJobs); {
		j := c.buildJobs[i]
		before := j.state
		j.step(c)
		quota--
		if j.done() {
			c.buildJobs = append(c.buildJobs[:i], c.buildJobs[i+1:]...)
			continue
		}
		if j.state == before {
			i++
		}
	}
}
