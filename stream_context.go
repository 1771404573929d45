package mstream

import (
	"context"
	"sync"
)

type Closer interface {
	Close() error
}

func newStreamContext() *streamContext {
	return &streamContext{
		closeChans: map[streamID]func(){},
		refers:     map[streamID][]streamID{},
		referCnts:  map[streamID]int{},
		workerCnts: map[streamID]int{},
	}
}

// streamContext tracks the workers of each routine and the pipes they feed.
// A pipe fed by several routines is only closed once the last of them has
// drained its input.
type streamContext struct {
	ctx context.Context
	wg  sync.WaitGroup

	mu         sync.Mutex
	closeChans map[streamID]func()
	refers     map[streamID][]streamID
	referCnts  map[streamID]int
	workerCnts map[streamID]int
}

func (c *streamContext) addCloseChan(rid, childID streamID, closeChan func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeChans[childID] = closeChan
	c.refers[rid] = append(c.refers[rid], childID)
	c.referCnts[childID]++
}

func (c *streamContext) startWorker(rid streamID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.wg.Add(1)
	c.workerCnts[rid]++
}

func (c *streamContext) doneWorker(rid streamID) {
	c.mu.Lock()
	c.workerCnts[rid]--
	if c.workerCnts[rid] == 0 {
		c.tryCloseChans(rid)
	}
	c.mu.Unlock()

	c.wg.Done()
}

// tryCloseChans is called with mu held.
func (c *streamContext) tryCloseChans(rid streamID) {
	refers, exists := c.refers[rid]
	if !exists {
		return
	}
	for _, childID := range refers {
		cnt := c.referCnts[childID]
		if cnt <= 1 {
			if closeChan, exists := c.closeChans[childID]; exists {
				closeChan()
			}
			delete(c.closeChans, childID)
		}
		c.referCnts[childID] = cnt - 1
	}
	delete(c.refers, rid)
}

func (c *streamContext) wait() {
	c.wg.Wait()
}
