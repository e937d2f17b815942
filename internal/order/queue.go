// Package order holds the mutable print-order queue of one client session.
package order

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/fotoflesz/printshop-backend/internal/pricing"
)

var (
	ErrEmptyBatch         = errors.New("order queue is empty")
	ErrSubmissionInFlight = errors.New("a batch submission is already in flight")
)

// Line is one queued print order. Price is derived from (Format, Quantity)
// and recomputed by the queue on every mutation; callers never set it.
type Line struct {
	ID         int       `json:"id"`
	Format     string    `json:"format"`
	Paper      string    `json:"paper"`
	ColorMode  string    `json:"colorMode"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	ArtifactID uuid.UUID `json:"artifactId"`
}

// Queue is the ordered batch under construction. UI-facing order is newest
// first; the submission snapshot is oldest first so positional indices stay
// stable for the server.
type Queue struct {
	catalog *pricing.Catalog

	mu         sync.Mutex
	lines      []Line // newest first
	nextID     int
	submitting bool
}

func NewQueue(catalog *pricing.Catalog) *Queue {
	return &Queue{catalog: catalog, nextID: 1}
}

// Add prepends a new line, assigning the next session-unique id. Ids are
// never reused, even after removal.
func (q *Queue) Add(format, paper, colorMode string, quantity int, artifact uuid.UUID) (Line, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.submitting {
		return Line{}, ErrSubmissionInFlight
	}
	line := Line{
		ID:         q.nextID,
		Format:     format,
		Paper:      paper,
		ColorMode:  colorMode,
		Quantity:   quantity,
		Price:      q.catalog.Price(format, quantity),
		ArtifactID: artifact,
	}
	q.nextID++
	q.lines = append([]Line{line}, q.lines...)
	return line, nil
}

// Remove drops the line with the given id. Removing an unknown id is a no-op.
func (q *Queue) Remove(id int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.submitting {
		return ErrSubmissionInFlight
	}
	for i, l := range q.lines {
		if l.ID == id {
			q.lines = append(q.lines[:i], q.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

// UpdateQuantity sets the quantity of the matching line and recomputes its
// price. All other fields are untouched; unknown ids are a no-op.
func (q *Queue) UpdateQuantity(id, quantity int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.submitting {
		return ErrSubmissionInFlight
	}
	for i := range q.lines {
		if q.lines[i].ID == id {
			q.lines[i].Quantity = quantity
			q.lines[i].Price = q.catalog.Price(q.lines[i].Format, quantity)
			return nil
		}
	}
	return nil
}

// Lines returns the UI ordering, newest first.
func (q *Queue) Lines() []Line {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Line, len(q.lines))
	copy(out, q.lines)
	return out
}

// Snapshot returns the submission ordering, oldest first. The server matches
// image parts to metadata by position, so this sequence must be stable.
func (q *Queue) Snapshot() []Line {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Line, len(q.lines))
	for i, l := range q.lines {
		out[len(q.lines)-1-i] = l
	}
	return out
}

func (q *Queue) Total() float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	sum := 0.0
	for _, l := range q.lines {
		sum += l.Price
	}
	return pricing.Round2(sum)
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lines)
}

// BeginSubmission freezes the queue for the duration of a batch submission.
// It fails on an empty queue or when another submission is pending.
func (q *Queue) BeginSubmission() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.submitting {
		return ErrSubmissionInFlight
	}
	if len(q.lines) == 0 {
		return ErrEmptyBatch
	}
	q.submitting = true
	return nil
}

// EndSubmission unfreezes the queue. On success the batch is cleared in full;
// on failure every line stays intact for retry.
func (q *Queue) EndSubmission(success bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.submitting = false
	if success {
		q.lines = nil
	}
}
