package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/center"
)

func sampleCenter(id string) *center.Center {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return &center.Center{
		ID:               id,
		Name:             "Delhi Central",
		Region:           "North",
		Location:         "Delhi",
		DailySalesTarget: 100,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestCenterRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewCenterRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleCenter("c1")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Delhi Central" || got.DailySalesTarget != 100 {
		t.Errorf("GetByID() = %+v", got)
	}
	if got.Region != "North" || got.Location != "Delhi" {
		t.Errorf("Region/Location = (%q, %q), want (North, Delhi)", got.Region, got.Location)
	}
	if !got.Active {
		t.Error("Active = false, want true")
	}
}

func TestCenterRepository_UpdatePersistsRegionAndLocation(t *testing.T) {
	db := newTestDB(t)
	repo := NewCenterRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleCenter("c1")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	c := sampleCenter("c1")
	c.Region = "South"
	c.Location = "Chennai"
	c.UpdatedAt = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.Update(ctx, c); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Region != "South" || got.Location != "Chennai" {
		t.Errorf("Region/Location = (%q, %q), want (South, Chennai)", got.Region, got.Location)
	}
}

func TestCenterRepository_ListActiveFiltersInactive(t *testing.T) {
	db := newTestDB(t)
	repo := NewCenterRepository(db)
	ctx := context.Background()

	active := sampleCenter("c1")
	inactive := sampleCenter("c2")
	inactive.Name = "Mumbai West"
	inactive.Active = false

	if err := repo.Create(ctx, active); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, inactive); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	centers, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(centers) != 1 || centers[0].ID != "c1" {
		t.Errorf("ListActive() = %d centers, want only c1", len(centers))
	}
}
