package location

import (
	"context"
	"errors"
	"testing"

	"swiftlogix/internal/types"
)

func TestUpdateAndLast(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	p := types.Point{Lat: 28.61, Lng: 77.23}
	if err := svc.Update(ctx, "d1", p); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, ok, err := svc.Last(ctx, "d1")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if !ok {
		t.Fatal("no position recorded")
	}
	if got != p {
		t.Errorf("Last = %v, want %v", got, p)
	}

	// A later update replaces the position.
	p2 := types.Point{Lat: 28.65, Lng: 77.25}
	if err := svc.Update(ctx, "d1", p2); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _, _ = svc.Last(ctx, "d1")
	if got != p2 {
		t.Errorf("Last after update = %v, want %v", got, p2)
	}
}

func TestUpdate_InvalidInput(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	cases := []struct {
		name     string
		driverID types.ID
		p        types.Point
	}{
		{"empty driver id", "", types.Point{Lat: 28.61, Lng: 77.23}},
		{"lat too large", "d1", types.Point{Lat: 91, Lng: 0}},
		{"lat too small", "d1", types.Point{Lat: -91, Lng: 0}},
		{"lng too large", "d1", types.Point{Lat: 0, Lng: 181}},
		{"lng too small", "d1", types.Point{Lat: 0, Lng: -181}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Update(ctx, tc.driverID, tc.p); !errors.Is(err, ErrInvalidCoordinates) {
				t.Errorf("Update = %v, want ErrInvalidCoordinates", err)
			}
		})
	}
}

func TestLast_UnknownDriver(t *testing.T) {
	svc := NewService(NewMemoryStore())
	_, ok, err := svc.Last(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if ok {
		t.Error("position reported for an unknown driver")
	}
}
