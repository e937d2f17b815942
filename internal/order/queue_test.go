package order

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/fotoflesz/printshop-backend/internal/pricing"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	return NewQueue(pricing.DefaultCatalog())
}

func TestAddAssignsMonotonicIDsNewestFirst(t *testing.T) {
	q := newTestQueue(t)
	a, err := q.Add("10x15", "glossy", "color", 3, uuid.New())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := q.Add("21x30", "lustre", "bw", 1, uuid.New())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", a.ID, b.ID)
	}
	lines := q.Lines()
	if lines[0].ID != 2 || lines[1].ID != 1 {
		t.Fatalf("UI ordering should be newest first, got %v", lines)
	}
	snap := q.Snapshot()
	if snap[0].ID != 1 || snap[1].ID != 2 {
		t.Fatalf("snapshot ordering should be oldest first, got %v", snap)
	}
}

func TestIDsNeverReused(t *testing.T) {
	q := newTestQueue(t)
	a, _ := q.Add("10x15", "glossy", "color", 1, uuid.New())
	if err := q.Remove(a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	b, _ := q.Add("10x15", "glossy", "color", 1, uuid.New())
	if b.ID != 2 {
		t.Fatalf("id after removal = %d, want 2", b.ID)
	}
}

func TestPriceDerivedOnAdd(t *testing.T) {
	q := newTestQueue(t)
	line, _ := q.Add("10x15", "glossy", "color", 3, uuid.New())
	if line.Price != 9.00 {
		t.Fatalf("price = %v, want 9.00", line.Price)
	}
}

func TestUpdateQuantityRecomputesPriceOnly(t *testing.T) {
	q := newTestQueue(t)
	line, _ := q.Add("21x30", "glossy", "sepia", 1, uuid.New())
	if err := q.UpdateQuantity(line.ID, 150); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := q.Lines()[0]
	if got.Price != 750.00 {
		t.Fatalf("price = %v, want 750.00", got.Price)
	}
	if got.Format != "21x30" || got.Paper != "glossy" || got.ColorMode != "sepia" {
		t.Fatalf("other fields mutated: %+v", got)
	}
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	q := newTestQueue(t)
	q.Add("10x15", "glossy", "color", 2, uuid.New())
	before := q.Total()
	if err := q.Remove(999); err != nil {
		t.Fatalf("remove unknown: %v", err)
	}
	if q.Total() != before || q.Len() != 1 {
		t.Fatal("remove of unknown id changed the queue")
	}
}

func TestTotalAfterAddRemoveRoundTrip(t *testing.T) {
	q := newTestQueue(t)
	q.Add("10x15", "glossy", "color", 2, uuid.New())
	before := q.Total()
	line, _ := q.Add("13x18", "lustre", "bw", 5, uuid.New())
	q.Remove(line.ID)
	if q.Total() != before {
		t.Fatalf("total = %v, want %v after add+remove of the same line", q.Total(), before)
	}
}

func TestTotalSumsAllLines(t *testing.T) {
	q := newTestQueue(t)
	q.Add("10x15", "glossy", "color", 3, uuid.New()) // 9.00
	q.Add("13x18", "glossy", "color", 7, uuid.New()) // 21.00
	if q.Total() != 30.00 {
		t.Fatalf("total = %v, want 30.00", q.Total())
	}
}

func TestSubmissionFreezesQueue(t *testing.T) {
	q := newTestQueue(t)
	q.Add("10x15", "glossy", "color", 1, uuid.New())
	if err := q.BeginSubmission(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := q.Add("10x15", "glossy", "color", 1, uuid.New()); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("add during submission: %v, want ErrSubmissionInFlight", err)
	}
	if err := q.BeginSubmission(); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("second begin: %v, want ErrSubmissionInFlight", err)
	}

	q.EndSubmission(false)
	if q.Len() != 1 {
		t.Fatal("failed submission must leave the queue intact")
	}

	if err := q.BeginSubmission(); err != nil {
		t.Fatalf("begin after failure: %v", err)
	}
	q.EndSubmission(true)
	if q.Len() != 0 {
		t.Fatal("successful submission must clear the queue")
	}
}

func TestBeginSubmissionRejectsEmptyQueue(t *testing.T) {
	q := newTestQueue(t)
	if err := q.BeginSubmission(); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("begin on empty queue: %v, want ErrEmptyBatch", err)
	}
}

func TestCustomerValidation(t *testing.T) {
	ok := Customer{Name: "Jan", Surname: "Kowalski", Phone: "123456789"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid customer rejected: %v", err)
	}
	for _, c := range []Customer{
		{Surname: "Kowalski", Phone: "123"},
		{Name: "Jan", Phone: "123"},
		{Name: "Jan", Surname: "Kowalski"},
		{Name: "  ", Surname: "Kowalski", Phone: "123"},
	} {
		if err := c.Validate(); !errors.Is(err, ErrMissingIdentity) {
			t.Fatalf("customer %+v: err = %v, want ErrMissingIdentity", c, err)
		}
	}
	withAddr := Customer{Name: "Jan", Surname: "Kowalski", Phone: "123", Address: ""}
	if err := withAddr.Validate(); err != nil {
		t.Fatalf("address must be optional: %v", err)
	}
}
