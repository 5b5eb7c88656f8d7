package analytics

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval matches the real-time page's refresh cadence.
const DefaultPollInterval = 5 * time.Second

// PollerOptions configures a background real-time poller.
type PollerOptions struct {
	Client   RealTimeClient
	Query    MetricsQuery
	Interval time.Duration
	// OnData receives each successful fetch.
	OnData func(ctx context.Context, data RealTimeData)
	// OnError receives fetch failures. Polling continues after errors.
	OnError func(err error)
}

// Poller periodically refreshes the real-time snapshot while live mode
// is on. The timer is cancelled on SetLive(false), Stop, and context
// cancellation, whichever comes first.
type Poller struct {
	opts PollerOptions

	mu      sync.Mutex
	base    context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	live    bool
	started bool
}

// NewPoller builds a poller with the default interval when unset.
func NewPoller(opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	return &Poller{opts: opts}
}

// Start arms the poller and turns live mode on. The first fetch happens
// after one interval. Calling Start twice is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.opts.Client == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	p.base = ctx
	p.started = true
	p.live = true
	p.spawnLocked()
}

// SetLive toggles polling without tearing the poller down. Turning live
// off cancels the timer and waits for the loop to exit.
func (p *Poller) SetLive(live bool) {
	p.mu.Lock()
	if !p.started || p.live == live {
		p.mu.Unlock()
		return
	}
	p.live = live
	if live {
		p.spawnLocked()
		p.mu.Unlock()
		return
	}
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	cancel()
	<-done
}

// Live reports whether the poller is currently ticking.
func (p *Poller) Live() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && p.live
}

// Stop halts polling entirely and waits for the loop to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.live = false
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// spawnLocked launches the poll loop. Callers hold p.mu.
func (p *Poller) spawnLocked() {
	ctx, cancel := context.WithCancel(p.base)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(ctx, p.done)
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			data, err := p.opts.Client.FetchRealTime(ctx, p.opts.Query)
			if err != nil {
				if p.opts.OnError != nil {
					p.opts.OnError(err)
				}
				continue
			}
			if p.opts.OnData != nil {
				p.opts.OnData(ctx, data)
			}
		}
	}
}
