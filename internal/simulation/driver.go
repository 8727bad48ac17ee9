package simulation

import (
	"fmt"

	"github.com/axonsim/exchange-sim/internal/message"
)

// Handler receives a dispatched message addressed (directly or via
// broadcast) to the target it was registered under.
type Handler func(msg message.Message)

// Driver is the single-threaded cooperative event loop: it owns a
// message queue and a clock, and walks messages forward in simulated
// time one at a time, firing Signals synchronously around each step.
//
// A Driver instance is the only goroutine permitted to mutate books,
// balances, or its own queue's contents directly; concurrent ingress
// (e.g. a transport goroutine delivering remote-agent responses) must
// go through the Driver's ThreadSafeQueue.
type Driver struct {
	state    State
	queue    *message.ThreadSafeQueue
	clock    int64
	signals  Signals
	handlers map[string][]Handler
}

// NewDriver returns a Driver in the Inactive state over the given
// queue.
func NewDriver(queue *message.ThreadSafeQueue) *Driver {
	return &Driver{
		state:    Inactive,
		queue:    queue,
		handlers: make(map[string][]Handler),
	}
}

// NewStartedFromState reconstitutes a Driver directly into the Started
// state at the given clock value, for resuming from a checkpoint. The
// state machine has no STOPPED/INACTIVE -> STARTED transition, so a
// checkpoint reload must construct a new instance rather than drive
// one through Start (see spec Open Question on checkpoint resume).
func NewStartedFromState(queue *message.ThreadSafeQueue, clock int64) *Driver {
	return &Driver{
		state:    Started,
		queue:    queue,
		clock:    clock,
		handlers: make(map[string][]Handler),
	}
}

// State returns the driver's current lifecycle stage.
func (d *Driver) State() State { return d.state }

// Clock returns the current simulated time.
func (d *Driver) Clock() int64 { return d.clock }

// Signals returns the driver's signal set for subscribing callbacks.
func (d *Driver) Signals() *Signals { return &d.signals }

// Queue returns the driver's message queue, e.g. for a transport
// goroutine to push into.
func (d *Driver) Queue() *message.ThreadSafeQueue { return d.queue }

// RegisterHandler routes messages addressed to target (directly, or
// via a broadcast listing it) to h. Multiple handlers may be
// registered under the same target; all of them run on every
// dispatch.
func (d *Driver) RegisterHandler(target string, h Handler) {
	d.handlers[target] = append(d.handlers[target], h)
}

// Start transitions Inactive -> Started and fires the start signal.
func (d *Driver) Start() error {
	if err := d.state.transition(Started); err != nil {
		return err
	}
	d.state = Started
	d.signals.fireStart()
	return nil
}

// Stop transitions Started -> Stopped and fires the stop signal.
func (d *Driver) Stop() error {
	if err := d.state.transition(Stopped); err != nil {
		return err
	}
	d.state = Stopped
	d.signals.fireStop()
	return nil
}

// Step advances the simulation by exactly one message: it peeks the
// head of the queue, fires TimeAboutToProgress, advances the clock to
// the message's arrival, fires Time, pops the message, dispatches it
// to every target, and fires Step. It returns false once the queue is
// empty, transitioning the driver to Stopped.
func (d *Driver) Step() (bool, error) {
	if d.state != Started {
		return false, fmt.Errorf("simulation: Step called while not STARTED (state=%s)", d.state)
	}

	pm, ok := d.queue.Top()
	if !ok {
		return false, d.Stop()
	}

	d.signals.fireTimeAboutToProgress(pm.Msg.Arrival)
	d.clock = pm.Msg.Arrival
	d.signals.fireTime(pm.Msg.Arrival)

	d.queue.Pop()
	d.dispatch(pm.Msg)
	d.signals.fireStep()

	return true, nil
}

// Run steps the driver until the queue drains and it stops, or a step
// errors.
func (d *Driver) Run() error {
	for {
		more, err := d.Step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (d *Driver) dispatch(msg message.Message) {
	for _, target := range msg.Targets {
		for _, h := range d.handlers[target] {
			h(msg)
		}
	}
}
