package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/dealflow"
)

func seedDealFlow(t *testing.T, repo dealflow.Repository, centerID, date string, rows []struct{ status, callResult string }) {
	t.Helper()
	ctx := context.Background()
	for i, row := range rows {
		err := repo.InsertEntry(ctx, &dealflow.Entry{
			ID:         fmt.Sprintf("%s-e%d", centerID, i),
			CenterID:   centerID,
			Status:     row.status,
			CallResult: row.callResult,
			EntryDate:  date,
			CreatedAt:  time.Now(),
		})
		if err != nil {
			t.Fatalf("InsertEntry() error = %v", err)
		}
	}
}

func TestMetricsProvider_SalesSnapshot(t *testing.T) {
	db := newTestDB(t)
	flows := NewDealFlowRepository(db)
	provider := NewMetricsProvider(db)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	seedDealFlow(t, flows, "center-1", "2026-09-01", []struct{ status, callResult string }{
		{dealflow.StatusPendingApproval, dealflow.CallResultSubmitted},
		{dealflow.StatusPendingApproval, dealflow.CallResultSubmitted},
		{dealflow.StatusPendingApproval, dealflow.CallResultUnderwriting},
		{"DQ'd Can't be sold", ""},
		{"Needs callback", ""},
	})

	snap, err := provider.SalesSnapshot(context.Background(), "center-1", date)
	if err != nil {
		t.Fatalf("SalesSnapshot() error = %v", err)
	}
	if snap.SalesCount != 2 {
		t.Errorf("SalesCount = %d, want 2 (pending approval + submitted only)", snap.SalesCount)
	}
	if snap.UnderwritingCount != 1 {
		t.Errorf("UnderwritingCount = %d, want 1", snap.UnderwritingCount)
	}
	if snap.TransferCount != 5 {
		t.Errorf("TransferCount = %d, want 5 (every entry counts)", snap.TransferCount)
	}
}

func TestMetricsProvider_DQStats(t *testing.T) {
	db := newTestDB(t)
	flows := NewDealFlowRepository(db)
	provider := NewMetricsProvider(db)
	ctx := context.Background()

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	seedDealFlow(t, flows, "center-1", "2026-09-01", []struct{ status, callResult string }{
		{dealflow.StatusPendingApproval, dealflow.CallResultSubmitted},
		{"DQ'd Can't be sold", ""},
		{"DQ'd Can't be sold", ""},
		{"Needs callback", ""},
	})

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	for i, category := range []string{"No consent", "Wrong number", "No consent", "Out of area"} {
		err := flows.InsertDQ(ctx, &dealflow.DQItem{
			ID:        fmt.Sprintf("dq%d", i),
			CenterID:  "center-1",
			Category:  category,
			EntryDate: "2026-09-01",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("InsertDQ() error = %v", err)
		}
	}

	stats, err := provider.DQStats(ctx, "center-1", date)
	if err != nil {
		t.Fatalf("DQStats() error = %v", err)
	}
	if stats.Count != 4 {
		t.Errorf("Count = %d, want 4", stats.Count)
	}
	if stats.Percentage != 100 {
		t.Errorf("Percentage = %v, want 100 (4 DQ over 4 transfers)", stats.Percentage)
	}
	if len(stats.TopIssues) != 3 {
		t.Errorf("TopIssues = %v, want 3 most recent", stats.TopIssues)
	}
	if len(stats.TopIssues) > 0 && stats.TopIssues[0] != "Out of area" {
		t.Errorf("TopIssues[0] = %s, want most recent first", stats.TopIssues[0])
	}
}

func TestMetricsProvider_ApprovalStats(t *testing.T) {
	db := newTestDB(t)
	flows := NewDealFlowRepository(db)
	provider := NewMetricsProvider(db)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// No transfers yet: ratio must read zero, not divide by zero.
	stats, err := provider.ApprovalStats(context.Background(), "center-1", date)
	if err != nil {
		t.Fatalf("ApprovalStats() error = %v", err)
	}
	if stats.Ratio != 0 {
		t.Errorf("Ratio = %v, want 0 with no transfers", stats.Ratio)
	}

	seedDealFlow(t, flows, "center-1", "2026-09-01", []struct{ status, callResult string }{
		{dealflow.StatusPendingApproval, dealflow.CallResultSubmitted},
		{dealflow.StatusPendingApproval, dealflow.CallResultUnderwriting},
		{"Needs callback", ""},
		{"Needs callback", ""},
	})

	stats, err = provider.ApprovalStats(context.Background(), "center-1", date)
	if err != nil {
		t.Fatalf("ApprovalStats() error = %v", err)
	}
	if stats.Ratio != 25 {
		t.Errorf("Ratio = %v, want 25 (1 submission over 4 transfers)", stats.Ratio)
	}
	if stats.Submissions != 1 || stats.Underwriting != 1 || stats.Transfers != 4 {
		t.Errorf("stats = %+v", stats)
	}
}
