package render

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/fotoflesz/printshop-backend/internal/geometry"
	"github.com/fotoflesz/printshop-backend/internal/platform/logger"
)

// Previewer regenerates the live-preview artifact in the background as the
// crop or rotation changes. Every change issues a task with a monotonically
// increasing sequence number; only the highest-sequence result ever reaches
// the slot, so a stale render that finishes late cannot overwrite a newer
// one. The previous in-flight task is cancelled when a new one is issued.
type Previewer struct {
	log      *logger.Logger
	renderer *Renderer
	store    *Store
	slot     *Slot
	debounce time.Duration

	mu      sync.Mutex
	seq     uint64
	applied uint64
	cancel  context.CancelFunc

	wg sync.WaitGroup
}

func NewPreviewer(log *logger.Logger, renderer *Renderer, store *Store, debounce time.Duration) *Previewer {
	return &Previewer{
		log:      log.With("component", "Previewer"),
		renderer: renderer,
		store:    store,
		slot:     NewSlot(store),
		debounce: debounce,
	}
}

func (p *Previewer) Slot() *Slot { return p.slot }

// Refresh schedules a preview render of crop at angleDeg. It returns
// immediately; the result lands in the slot once the debounce interval has
// passed without a newer refresh superseding this one.
func (p *Previewer) Refresh(ctx context.Context, src image.Image, crop geometry.Rect, angleDeg float64) {
	p.mu.Lock()
	p.seq++
	mySeq := p.seq
	if p.cancel != nil {
		p.cancel()
	}
	taskCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()

		if p.debounce > 0 {
			timer := time.NewTimer(p.debounce)
			defer timer.Stop()
			select {
			case <-taskCtx.Done():
				return
			case <-timer.C:
			}
		}

		data, err := p.renderer.Render(src, crop, angleDeg, 1.0, QualityPreview)
		if err != nil {
			p.log.Warn("preview render failed", "seq", mySeq, "error", err)
			return
		}
		if taskCtx.Err() != nil {
			return
		}
		p.apply(mySeq, data)
	}()
}

// apply installs a completed render, or drops it when a newer refresh has
// been issued or applied. The check and the slot swap stay under one lock:
// deciding a result is current and installing it must be indivisible, or a
// descheduled older task could still land its artifact after a newer one.
func (p *Previewer) apply(seq uint64, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq <= p.applied || seq < p.seq {
		p.log.Debug("discarding stale preview", "seq", seq)
		return
	}
	p.applied = seq
	p.slot.Set(p.store.Put(data))
}

// Flush blocks until every issued task has settled. Intended for shutdown and
// tests; normal operation never waits on renders.
func (p *Previewer) Flush() {
	p.wg.Wait()
}
