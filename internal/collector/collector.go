package collector

import (
	"log"
	"sync"
	"time"

	"SessionSpectra/internal/counter"
	"SessionSpectra/internal/model"
)

// Observer is notified of every materialized snapshot, after the writers
// have been dispatched. The alerter implements it.
type Observer interface {
	ObserveSnapshot(snap *model.Snapshot)
}

// Collector accumulates session intervals from a stream and periodically
// materializes per-second concurrency snapshots for a set of writers.
// Intervals are kept for the lifetime of the run, so each snapshot covers
// everything seen so far.
type Collector struct {
	mu        sync.Mutex
	intervals []model.Interval
	span      model.TimeSpan

	writers  []model.Writer
	observer Observer
	interval time.Duration
	maxBins  uint64

	input         chan model.Interval
	done          chan struct{}
	workerWg      sync.WaitGroup
	snapshotterWg sync.WaitGroup
}

// New creates a collector that snapshots every snapshotInterval to the
// given writers. A maxBins of zero falls back to the default cap.
func New(snapshotInterval time.Duration, maxBins uint64, channelSize int, writers []model.Writer) *Collector {
	if maxBins == 0 {
		maxBins = counter.DefaultMaxBins
	}
	if channelSize <= 0 {
		channelSize = 1024
	}
	return &Collector{
		span:     model.EmptyTimeSpan(),
		writers:  writers,
		interval: snapshotInterval,
		maxBins:  maxBins,
		input:    make(chan model.Interval, channelSize),
		done:     make(chan struct{}),
	}
}

// SetObserver registers an observer for materialized snapshots. Must be
// called before Start.
func (c *Collector) SetObserver(obs Observer) {
	c.observer = obs
}

// Input returns the channel to which intervals should be sent.
func (c *Collector) Input() chan<- model.Interval {
	return c.input
}

// Start launches the collecting worker and the snapshotter goroutine.
func (c *Collector) Start() {
	c.workerWg.Add(1)
	go c.worker()

	c.snapshotterWg.Add(1)
	go c.runSnapshotter()

	log.Printf("Collector started with snapshot interval %s and %d writer(s).", c.interval, len(c.writers))
}

// Stop gracefully shuts down the collector: the input channel is drained,
// then one final snapshot is taken and written.
func (c *Collector) Stop() {
	log.Println("Collector stopping...")
	close(c.input)
	c.workerWg.Wait()

	close(c.done)
	c.snapshotterWg.Wait()
	log.Println("Collector stopped.")
}

func (c *Collector) worker() {
	defer c.workerWg.Done()
	for iv := range c.input {
		c.mu.Lock()
		c.intervals = append(c.intervals, iv)
		c.span = c.span.Extend(iv)
		c.mu.Unlock()
	}
}

func (c *Collector) runSnapshotter() {
	defer c.snapshotterWg.Done()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.takeSnapshot()
		case <-c.done:
			c.takeSnapshot()
			return
		}
	}
}

// takeSnapshot bins everything collected so far and fans the snapshot out
// to all writers concurrently.
func (c *Collector) takeSnapshot() {
	c.mu.Lock()
	span := c.span
	intervals := make([]model.Interval, len(c.intervals))
	copy(intervals, c.intervals)
	c.mu.Unlock()

	if span.Empty() {
		log.Println("No intervals collected yet, skipping snapshot.")
		return
	}

	table, err := counter.NewBinTableLimit(span, c.maxBins)
	if err != nil {
		log.Printf("Error building bin table for snapshot: %v", err)
		return
	}
	for _, iv := range intervals {
		table.Add(iv)
	}

	snap := table.Snapshot(time.Now(), uint64(len(intervals)))
	log.Printf("Taking snapshot %s: %d sessions over [%d, %d].", snap.ID, snap.Sessions, span.Begin, span.End)

	var wg sync.WaitGroup
	wg.Add(len(c.writers))
	for _, writer := range c.writers {
		go func(w model.Writer) {
			defer wg.Done()
			if err := w.Write(snap); err != nil {
				log.Printf("Error writing snapshot via %s writer: %v", w.Name(), err)
			}
		}(writer)
	}
	wg.Wait()

	if c.observer != nil {
		c.observer.ObserveSnapshot(snap)
	}
}
