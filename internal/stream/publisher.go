package stream

import (
	"context"
	"log/slog"
	"math/rand"
	"time"
)

// Intervals configures a Publisher's timers. Zero values take defaults.
type Intervals struct {
	Heartbeat time.Duration // fixed heartbeat period
	UpdateMin time.Duration // lower bound of the randomized update period
	UpdateMax time.Duration // upper bound of the randomized update period
}

// DefaultIntervals matches the production cadence: 15 s heartbeats and a
// simulated update every 10-15 s.
var DefaultIntervals = Intervals{
	Heartbeat: 15 * time.Second,
	UpdateMin: 10 * time.Second,
	UpdateMax: 15 * time.Second,
}

func (iv Intervals) withDefaults() Intervals {
	if iv.Heartbeat <= 0 {
		iv.Heartbeat = DefaultIntervals.Heartbeat
	}
	if iv.UpdateMin <= 0 {
		iv.UpdateMin = DefaultIntervals.UpdateMin
	}
	if iv.UpdateMax < iv.UpdateMin {
		iv.UpdateMax = iv.UpdateMin
	}
	return iv
}

// Publisher drives one client connection's event feed. It emits a
// connected event, then heartbeats and simulated listing updates until the
// context is cancelled or the send function fails.
type Publisher struct {
	sim       *Simulator
	intervals Intervals
	rng       *rand.Rand
}

// NewPublisher creates a publisher for one connection.
func NewPublisher(sim *Simulator, intervals Intervals) *Publisher {
	return &Publisher{
		sim:       sim,
		intervals: intervals.withDefaults(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run feeds events to send until ctx is done. It returns nil on clean
// teardown and the send error if delivery fails. A failed simulated
// mutation drops that tick and keeps the connection open.
func (p *Publisher) Run(ctx context.Context, send func(Event) error) error {
	if err := send(Event{Type: EventConnected}); err != nil {
		return err
	}

	heartbeat := time.NewTicker(p.intervals.Heartbeat)
	defer heartbeat.Stop()

	update := time.NewTimer(p.nextUpdateDelay())
	defer update.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-heartbeat.C:
			ev := Event{Type: EventHeartbeat, Timestamp: time.Now().UnixMilli()}
			if err := send(ev); err != nil {
				return err
			}

		case <-update.C:
			update.Reset(p.nextUpdateDelay())

			updated, err := p.sim.Tick()
			if err != nil {
				slog.Warn("simulated update failed, skipping tick", "error", err)
				continue
			}
			if updated == nil {
				continue
			}

			ev := Event{Type: EventListingUpdated, Listing: updated}
			if err := send(ev); err != nil {
				return err
			}
		}
	}
}

// nextUpdateDelay draws a fresh delay in [UpdateMin, UpdateMax].
func (p *Publisher) nextUpdateDelay() time.Duration {
	spread := p.intervals.UpdateMax - p.intervals.UpdateMin
	if spread <= 0 {
		return p.intervals.UpdateMin
	}
	return p.intervals.UpdateMin + time.Duration(p.rng.Int63n(int64(spread)+1))
}
