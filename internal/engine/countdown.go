// Package engine runs the background countdown.
// The Countdown is an isolated goroutine owning at most one active tick loop;
// the session drives it through a command mailbox and consumes one-way events.
// It knows nothing about tasks or tags, only a timer id and remaining seconds.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/tempo-sh/tempo/internal/infra/metrics"
)

// DefaultTick is the production tick interval. Tests shrink it.
const DefaultTick = time.Second

// ─── Events ─────────────────────────────────────────────────────────────────
// Events form a closed sum; consumers type-switch over the three kinds.

// Event is a one-way notification emitted by the countdown.
type Event interface{ isEvent() }

// Started acknowledges that a Start command was accepted.
type Started struct{}

// Update carries one tick's new remaining value.
type Update struct {
	ID        string
	Remaining int
}

// Completed signals the countdown crossed below zero.
type Completed struct {
	ID string
}

func (Started) isEvent()   {}
func (Update) isEvent()    {}
func (Completed) isEvent() {}

// ─── Commands ───────────────────────────────────────────────────────────────

type command interface{ isCommand() }

type startCmd struct {
	id        string
	remaining int
}

type stopCmd struct{}

func (startCmd) isCommand() {}
func (stopCmd) isCommand()  {}

// ─── Countdown ──────────────────────────────────────────────────────────────

// Countdown is the background tick loop. Construct with New, run with Run,
// drive with Start/Stop; never a package-level singleton.
type Countdown struct {
	tick   time.Duration
	cmds   chan command
	events chan Event
}

// New creates a countdown ticking at the given interval.
func New(tick time.Duration) *Countdown {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Countdown{
		tick:   tick,
		cmds:   make(chan command, 16),
		events: make(chan Event, 64),
	}
}

// Events returns the event stream. A single consumer is expected.
func (c *Countdown) Events() <-chan Event { return c.events }

// Start begins a countdown from remaining seconds. If one is already active
// the command is ignored by the loop, keeping at most one countdown.
func (c *Countdown) Start(id string, remaining int) {
	c.cmds <- startCmd{id: id, remaining: remaining}
}

// Stop halts the active countdown, if any. Safe to call repeatedly.
func (c *Countdown) Stop() {
	c.cmds <- stopCmd{}
}

// Run executes the tick loop until ctx is cancelled. Call in a goroutine.
func (c *Countdown) Run(ctx context.Context) {
	var (
		active    bool
		id        string
		remaining int
		ticker    *time.Ticker
		tickC     <-chan time.Time
	)

	halt := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
		active = false
	}

	for {
		select {
		case <-ctx.Done():
			halt()
			return

		case cmd := <-c.cmds:
			switch m := cmd.(type) {
			case startCmd:
				if active {
					log.Printf("[engine] start ignored: countdown already active")
					continue
				}
				active = true
				id = m.id
				remaining = m.remaining
				c.emit(Started{})
				ticker = time.NewTicker(c.tick)
				tickC = ticker.C

			case stopCmd:
				halt()

			default:
				log.Printf("[engine] unknown command %T", cmd)
			}

		case <-tickC:
			remaining--
			metrics.EngineTicks.Inc()
			if remaining < 0 {
				halt()
				c.emit(Completed{ID: id})
			} else {
				c.emit(Update{ID: id, Remaining: remaining})
			}
		}
	}
}

// emit never blocks the tick loop; a full event buffer drops the event.
// The session consumes continuously, so drops only happen when it is gone.
func (c *Countdown) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		log.Printf("[engine] event buffer full, dropping %T", ev)
	}
}
