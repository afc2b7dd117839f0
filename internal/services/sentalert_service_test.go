package services

import (
	"context"
	"testing"
	"time"

	"github.com/centerpulse/centerpulse/internal/domain/sentalert"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	"github.com/centerpulse/centerpulse/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestAcknowledgeFirstWriteWins(t *testing.T) {
	repo := testutil.NewMockSentAlertRepository()
	repo.Alerts = []*sentalert.SentAlert{
		{ID: "a1", RuleID: "rule-1", CenterID: "center-1", SentAt: time.Now()},
	}
	clock := &testutil.FakeClock{Time: time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)}
	svc := NewSentAlertService(repo, clock, testLogger())

	first, err := svc.Acknowledge(context.Background(), "a1", "priya", "called center")
	if err != nil {
		t.Fatalf("first Acknowledge() error = %v", err)
	}
	if first.AcknowledgedBy == nil || *first.AcknowledgedBy != "priya" {
		t.Fatalf("AcknowledgedBy = %v, want priya", first.AcknowledgedBy)
	}
	firstAt := *first.AcknowledgedAt

	// A later acknowledgement by someone else succeeds but changes
	// nothing.
	clock.Advance(10 * time.Minute)
	second, err := svc.Acknowledge(context.Background(), "a1", "rahul", "escalated")
	if err != nil {
		t.Fatalf("second Acknowledge() error = %v", err)
	}
	if *second.AcknowledgedBy != "priya" {
		t.Errorf("AcknowledgedBy = %s, want priya (first write wins)", *second.AcknowledgedBy)
	}
	if !second.AcknowledgedAt.Equal(firstAt) {
		t.Errorf("AcknowledgedAt = %v, want unchanged %v", second.AcknowledgedAt, firstAt)
	}
	if second.ResponseAction == nil || *second.ResponseAction != "called center" {
		t.Errorf("ResponseAction = %v, want original action", second.ResponseAction)
	}
}

func TestAcknowledgeRequiresActor(t *testing.T) {
	repo := testutil.NewMockSentAlertRepository()
	svc := NewSentAlertService(repo, &testutil.FakeClock{Time: time.Now()}, testLogger())

	if _, err := svc.Acknowledge(context.Background(), "a1", "", ""); err == nil {
		t.Error("Acknowledge() error = nil, want bad request for empty actor")
	}
}

func TestAcknowledgeMissingAlert(t *testing.T) {
	repo := testutil.NewMockSentAlertRepository()
	svc := NewSentAlertService(repo, &testutil.FakeClock{Time: time.Now()}, testLogger())

	if _, err := svc.Acknowledge(context.Background(), "missing", "priya", ""); err == nil {
		t.Error("Acknowledge() error = nil, want not found")
	}
}

func TestSummaryWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	repo := testutil.NewMockSentAlertRepository()
	repo.Alerts = []*sentalert.SentAlert{
		{ID: "a1", AlertType: "low_sales", CenterID: "center-1", SentAt: now.AddDate(0, 0, -1)},
		{ID: "a2", AlertType: "zero_sales", CenterID: "center-1", SentAt: now.AddDate(0, 0, -3)},
		{ID: "a3", AlertType: "low_sales", CenterID: "center-2", SentAt: now.AddDate(0, 0, -10)},
	}
	svc := NewSentAlertService(repo, &testutil.FakeClock{Time: now}, testLogger())

	summary, err := svc.Summary(context.Background(), 7)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Total != 2 {
		t.Errorf("Total = %d, want 2 (10-day-old row excluded)", summary.Total)
	}
	if summary.ByType["low_sales"] != 1 {
		t.Errorf("ByType[low_sales] = %d, want 1", summary.ByType["low_sales"])
	}
}
