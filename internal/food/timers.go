package food

import "github.com/vovakirdan/flaky-snakey/internal/core"

// FirstTimerID is the lowest decay timer ID. Lower IDs belong to the match
// clocks.
const FirstTimerID core.TimerID = 2

// timerPool hands out decay timer IDs up to a fixed budget, recycling
// released IDs before minting new ones.
type timerPool struct {
	budget int
	next   core.TimerID
	free   []core.TimerID
	inUse  map[core.TimerID]struct{}
}

func newTimerPool(budget int) *timerPool {
	return &timerPool{
		budget: budget,
		next:   FirstTimerID,
		inUse:  make(map[core.TimerID]struct{}),
	}
}

func (p *timerPool) acquire() (core.TimerID, bool) {
	if len(p.inUse) >= p.budget {
		return NoTimer, false
	}
	var id core.TimerID
	if n := len(p.free); n > 0 {
		id = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		id = p.next
		p.next++
	}
	p.inUse[id] = struct{}{}
	return id, true
}

func (p *timerPool) release(id core.TimerID) {
	if id == NoTimer {
		return
	}
	if _, ok := p.inUse[id]; !ok {
		return
	}
	delete(p.inUse, id)
	p.free = append(p.free, id)
}

func (p *timerPool) active() int {
	return len(p.inUse)
}
