// README: Concurrency tests for the assign-once guarantee.
package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"swiftlogix/internal/types"
)

// TestConcurrentAcceptSameOrder races many drivers for a single pending
// order. Exactly one accept must succeed and the stored order must carry
// that driver's id.
func TestConcurrentAcceptSameOrder(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	o := mustCreateOrder(t, svc, "c1")

	const drivers = 32

	var wg sync.WaitGroup
	winners := make(chan types.ID, drivers)
	var unavailable, unexpected int64
	var mu sync.Mutex

	for i := 0; i < drivers; i++ {
		wg.Add(1)
		driverID := types.ID(fmt.Sprintf("driver-%d", i))
		go func() {
			defer wg.Done()
			_, err := svc.Accept(ctx, AcceptCommand{OrderID: o.ID, DriverID: driverID})
			switch {
			case err == nil:
				winners <- driverID
			case errors.Is(err, ErrUnavailable):
				mu.Lock()
				unavailable++
				mu.Unlock()
			default:
				mu.Lock()
				unexpected++
				mu.Unlock()
				t.Errorf("accept by %s: %v", driverID, err)
			}
		}()
	}
	wg.Wait()
	close(winners)

	var won []types.ID
	for id := range winners {
		won = append(won, id)
	}
	if len(won) != 1 {
		t.Fatalf("expected exactly 1 successful accept, got %d", len(won))
	}
	if unavailable != drivers-1 {
		t.Errorf("unavailable = %d, want %d", unavailable, drivers-1)
	}

	final, err := svc.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if final.Status != StatusAssigned {
		t.Errorf("final status = %s, want %s", final.Status, StatusAssigned)
	}
	if final.DriverID == nil || *final.DriverID != won[0] {
		t.Errorf("final driver = %v, want %s", final.DriverID, won[0])
	}
}

// TestConcurrentStatusUpdate races duplicate advances of the same order;
// the versioned conditional write lets exactly one through.
func TestConcurrentStatusUpdate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	o := mustCreateOrder(t, svc, "c1")
	if _, err := svc.Accept(ctx, AcceptCommand{OrderID: o.ID, DriverID: "d1"}); err != nil {
		t.Fatalf("accept: %v", err)
	}

	const attempts = 16

	var wg sync.WaitGroup
	var ok, rejected int64
	var mu sync.Mutex
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateStatus(ctx, o.ID, driverIdentity("d1"), StatusPicked)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidState):
				// Losers see either a stale version or the already-advanced state.
				rejected++
			default:
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 {
		t.Fatalf("expected exactly 1 successful update, got %d", ok)
	}
	if rejected != attempts-1 {
		t.Errorf("rejected = %d, want %d", rejected, attempts-1)
	}

	final, err := svc.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if final.Status != StatusPicked {
		t.Errorf("final status = %s, want %s", final.Status, StatusPicked)
	}
}
