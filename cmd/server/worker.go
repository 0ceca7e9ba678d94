package main

import (
	"image"
	"log/slog"
	"sync"

	mandel "github.com/malfet/Mandelbrot"
)

// progressTracker accounts the pixels of finished partitions. Partition
// workers report concurrently; reports are serialized so Finished never
// goes backwards on the wire.
type progressTracker struct {
	totalPixels    int
	finishedPixels int
	m              sync.Mutex
}

func newProgressTracker(totalPixels int) *progressTracker {
	return &progressTracker{totalPixels: totalPixels}
}

func (pt *progressTracker) tileFinished(tile image.Rectangle, area float64, send func(mandel.Progress)) {
	pt.m.Lock()
	defer pt.m.Unlock()
	pt.finishedPixels += tile.Dx() * tile.Dy()
	send(mandel.Progress{Tile: tile, Area: area, Finished: pt.finished()})
}

func (pt *progressTracker) finished() float64 {
	if pt.totalPixels == 0 {
		return 1
	}
	return float64(pt.finishedPixels) / float64(pt.totalPixels)
}

// jobCounter tracks the renders in flight across connections.
type jobCounter struct {
	active int
	m      sync.Mutex
	log    *slog.Logger
}

func (jc *jobCounter) inc() {
	jc.m.Lock()
	jc.active++
	n := jc.active
	jc.m.Unlock()

	jc.log.Info("job started", "active", n)
}

func (jc *jobCounter) dec() {
	jc.m.Lock()
	jc.active--
	n := jc.active
	jc.m.Unlock()

	jc.log.Info("job finished", "active", n)
}
