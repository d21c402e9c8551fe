package providers

import (
	"context"
	"testing"
	"time"

	"github.com/Agmahima/TravelEase/internal/models"
)

func TestCabCatalog(t *testing.T) {
	p, err := NewCabCatalog()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	p.Latency = 0

	cabs, err := p.Search(context.Background(), models.CabSearchRequest{Location: "Goa", Passengers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cabs) != 2 {
		t.Fatalf("expected 2 cabs, got %d", len(cabs))
	}
	if cabs[0].Type != "Economy" || cabs[0].DailyRate != 45 || cabs[0].Currency != "USD" {
		t.Fatalf("unexpected economy cab %+v", cabs[0])
	}
	if cabs[1].DailyRate != 75 || len(cabs[1].Features) != 4 {
		t.Fatalf("unexpected premium cab %+v", cabs[1])
	}

	cabs[0].Features[0] = "changed"
	again, _ := p.Search(context.Background(), models.CabSearchRequest{})
	if again[0].Features[0] != "AC" {
		t.Fatal("catalog must not share feature slices with callers")
	}
}

func TestCabCatalogCapacity(t *testing.T) {
	p, _ := NewCabCatalog()
	p.Latency = 0
	cabs, _ := p.Search(context.Background(), models.CabSearchRequest{Passengers: 6})
	if len(cabs) != 0 {
		t.Fatalf("no cab seats six, got %d", len(cabs))
	}
}

func TestCabCatalogHonoursContext(t *testing.T) {
	p, _ := NewCabCatalog()
	p.Latency = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Search(ctx, models.CabSearchRequest{}); err == nil {
		t.Fatal("expected context error")
	}
}
