package simulation

import (
	"sync"

	"github.com/axonsim/exchange-sim/internal/message"
	"github.com/axonsim/exchange-sim/internal/partition"
)

// Cluster runs one Driver per compute block, each on its own
// goroutine, with no shared state between blocks: cross-block traffic
// travels only as canonicalized book-id messages pushed into the
// destination block's own queue.
type Cluster struct {
	blockDim uint32
	drivers  []*Driver
}

// NewCluster builds a Cluster of n independent blocks, each owning
// blockDim book ids.
func NewCluster(n int, blockDim uint32) *Cluster {
	drivers := make([]*Driver, n)
	for i := range drivers {
		drivers[i] = NewDriver(message.NewThreadSafeQueue())
	}
	return &Cluster{blockDim: blockDim, drivers: drivers}
}

// Driver returns the Driver owning the given block index.
func (c *Cluster) Driver(blockIdx int) *Driver { return c.drivers[blockIdx] }

// Route canonicalizes msg for the given block index and pushes it onto
// that block's queue, bridging a cross-block send.
func (c *Cluster) Route(blockIdx int, msg message.Message, marginCallID uint64) {
	canonical := partition.Canonize(msg, uint32(blockIdx), c.blockDim)
	c.drivers[blockIdx].Queue().Push(message.PrioritizedMessage{Msg: canonical, MarginCallID: marginCallID})
}

// Run starts and drains every block's driver concurrently, returning
// once all of them have stopped. Per-block errors are collected but do
// not halt the other blocks.
func (c *Cluster) Run() []error {
	errs := make([]error, len(c.drivers))
	var wg sync.WaitGroup
	for i, d := range c.drivers {
		wg.Add(1)
		go func(i int, d *Driver) {
			defer wg.Done()
			if err := d.Start(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = d.Run()
		}(i, d)
	}
	wg.Wait()
	return errs
}
