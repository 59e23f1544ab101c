package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/venue-booking/internal/ledger"
	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
	"github.com/Shivanand-hulikatti/venue-booking/internal/repository"
	"github.com/Shivanand-hulikatti/venue-booking/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
)

func setupLedger(t *testing.T) (*ledger.Ledger, *pgxpool.Pool, context.Context) {
	t.Helper()
	ctx := context.Background()
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)
	return ledger.New(repository.NewBookingRepository(pool), testutil.DiscardLogger()), pool, ctx
}

func TestLedgerPostgres_ConcurrentReservations(t *testing.T) {
	l, pool, ctx := setupLedger(t)

	const capacity = 5
	const attempts = 25
	eventID := testutil.InsertEvent(t, ctx, pool, "Concierto", capacity, model.EventScheduled)

	var wg sync.WaitGroup
	var ok, full atomic.Int64
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := l.Reserve(ctx, ledger.ReserveInput{
				EventID: eventID,
				Qty:     1,
				Name:    "Guest",
				Email:   fmt.Sprintf("guest-%d@example.com", i),
			})
			var capErr *model.CapacityError
			switch {
			case err == nil:
				ok.Add(1)
			case errors.As(err, &capErr):
				full.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if ok.Load() != capacity {
		t.Fatalf("expected %d successes, got %d", capacity, ok.Load())
	}
	if full.Load() != attempts-capacity {
		t.Fatalf("expected %d capacity errors, got %d", attempts-capacity, full.Load())
	}
	if got := testutil.ConfirmedSum(t, ctx, pool, eventID); got != capacity {
		t.Fatalf("expected %d reserved, got %d", capacity, got)
	}
	if got := testutil.EventStatus(t, ctx, pool, eventID); got != model.EventSoldOut {
		t.Fatalf("expected soldout, got %s", got)
	}
}

func TestLedgerPostgres_Walkthrough(t *testing.T) {
	l, pool, ctx := setupLedger(t)
	eventID := testutil.InsertEvent(t, ctx, pool, "Taller", 5, model.EventScheduled)

	first, err := l.Reserve(ctx, ledger.ReserveInput{EventID: eventID, Qty: 3, Name: "A", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := l.Reserve(ctx, ledger.ReserveInput{EventID: eventID, Qty: 3, Name: "B", Email: "b@example.com"}); err == nil || err.Error() != "only 2 available" {
		t.Fatalf("expected only 2 available, got %v", err)
	}
	if _, err := l.Reserve(ctx, ledger.ReserveInput{EventID: eventID, Qty: 2, Name: "C", Email: "c@example.com"}); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if got := testutil.EventStatus(t, ctx, pool, eventID); got != model.EventSoldOut {
		t.Fatalf("expected soldout, got %s", got)
	}

	if _, err := l.SetStatus(ctx, first.ID, model.BookingCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	av, err := l.Availability(ctx, eventID)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if av.ReservedQty != 2 || av.AvailableQty != 3 || av.Status != model.EventScheduled {
		t.Fatalf("unexpected availability %+v", av)
	}
	if got := testutil.ConfirmedSum(t, ctx, pool, eventID); got != av.ReservedQty {
		t.Fatalf("availability %d disagrees with table sum %d", av.ReservedQty, got)
	}

	if _, err := l.Remove(ctx, first.ID); err != nil {
		t.Fatalf("remove cancelled: %v", err)
	}
	if got := testutil.ConfirmedSum(t, ctx, pool, eventID); got != 2 {
		t.Fatalf("expected 2 reserved after removing cancelled booking, got %d", got)
	}
}

func TestLedgerPostgres_DuplicateEmail(t *testing.T) {
	l, pool, ctx := setupLedger(t)
	eventID := testutil.InsertEvent(t, ctx, pool, "Teatro", 10, model.EventScheduled)

	if _, err := l.Reserve(ctx, ledger.ReserveInput{EventID: eventID, Qty: 1, Name: "A", Email: "a@example.com"}); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	_, err := l.Reserve(ctx, ledger.ReserveInput{EventID: eventID, Qty: 1, Name: "A", Email: "A@Example.com"})
	if !errors.Is(err, model.ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}
}

func TestLedgerPostgres_InvalidEventID(t *testing.T) {
	l, _, ctx := setupLedger(t)

	_, err := l.Reserve(ctx, ledger.ReserveInput{EventID: "not-a-uuid", Qty: 1, Name: "A", Email: "a@example.com"})
	if !errors.Is(err, model.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestLedgerPostgres_EventsDoNotBlockEachOther(t *testing.T) {
	l, pool, ctx := setupLedger(t)
	eventA := testutil.InsertEvent(t, ctx, pool, "A", 10, model.EventScheduled)
	eventB := testutil.InsertEvent(t, ctx, pool, "B", 10, model.EventScheduled)

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()
	if _, err := tx.Exec(ctx, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, eventB); err != nil {
		t.Fatalf("lock event B: %v", err)
	}

	reserveCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if _, err := l.Reserve(reserveCtx, ledger.ReserveInput{EventID: eventA, Qty: 1, Name: "A", Email: "a@example.com"}); err != nil {
		t.Fatalf("reserve on A while B is locked: %v", err)
	}

	blockedCtx, cancelBlocked := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancelBlocked()
	if _, err := l.Reserve(blockedCtx, ledger.ReserveInput{EventID: eventB, Qty: 1, Name: "B", Email: "b@example.com"}); err == nil {
		t.Fatalf("expected reserve on locked event B to wait past its deadline")
	}
}

func TestLedgerPostgres_ReconcileEvent(t *testing.T) {
	l, pool, ctx := setupLedger(t)
	eventID := testutil.InsertEvent(t, ctx, pool, "Danza", 4, model.EventScheduled)
	testutil.InsertBooking(t, ctx, pool, eventID, "a@example.com", 3, model.BookingConfirmed)

	_, err := l.ReconcileEvent(ctx, eventID, func(ev *model.Event) error {
		ev.CapacityTotal = 2
		return nil
	})
	if !errors.Is(err, model.ErrCapacityBelowReserved) {
		t.Fatalf("expected ErrCapacityBelowReserved, got %v", err)
	}

	ev, err := l.ReconcileEvent(ctx, eventID, func(ev *model.Event) error {
		ev.CapacityTotal = 3
		ev.Title = "Danza contemporánea"
		return nil
	})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if ev.Status != model.EventSoldOut {
		t.Fatalf("expected soldout, got %s", ev.Status)
	}
	if got := testutil.EventStatus(t, ctx, pool, eventID); got != model.EventSoldOut {
		t.Fatalf("expected stored soldout, got %s", got)
	}
}
