package room

import (
	"time"
)

// countdown ticks down on the dealer's run loop. Every tick and the
// expiry fire as closures on the run loop, so onTick and onExpire may
// touch dealer state freely. done is only read and written from the run
// loop, which makes cancellation race-free against a tick already in
// flight.
type countdown struct {
	remaining int
	done      bool
	stop      chan bool
}

// startCountdown starts a countdown of n ticks
// Note: this must only be called from within the run loop
func (d *Dealer) startCountdown(n int, onTick func(remaining int), onExpire func()) *countdown {
	c := &countdown{
		remaining: n,
		stop:      make(chan bool),
	}

	go func() {
		ticker := time.NewTicker(d.tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				tick := func() {
					if c.done {
						return
					}

					c.remaining--
					if c.remaining <= 0 {
						c.expire()
						onExpire()
						return
					}

					if onTick != nil {
						onTick(c.remaining)
					}
				}

				// the dealer may have gone off shift with the countdown
				// still live; without the close arm this goroutine would
				// tick forever with nobody draining the run loop
				select {
				case d.execInRunLoop <- tick:
				case <-d.close:
					return
				}
			case <-c.stop:
				return
			case <-d.close:
				return
			}
		}
	}()

	return c
}

// cancel stops the countdown before it expires
// Note: this must only be called from within the run loop
func (c *countdown) cancel() {
	if c.done {
		return
	}

	c.done = true
	close(c.stop)
}

// Note: this must only be called from within the run loop
func (c *countdown) expire() {
	c.done = true
	close(c.stop)
}
