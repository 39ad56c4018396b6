package clients

import (
	"testing"

	"backoffice/internal/models"
)

func TestStatsPartitionsAreComplete(t *testing.T) {
	all := []models.Order{
		clientOrder("a@test.com", daysAgo(3), 100),
		clientOrder("a@test.com", daysAgo(1), 100),
		clientOrder("b@test.com", daysAgo(10), 300),
		clientOrder("c@test.com", daysAgo(200), 50),
	}

	stats := Stats(Build(all, testNow))

	if stats.TotalClients != 3 {
		t.Fatalf("expected 3 clients, got %d", stats.TotalClients)
	}

	if len(stats.BehaviorStats) != 6 {
		t.Fatalf("expected all 6 behavior buckets present, got %d", len(stats.BehaviorStats))
	}
	if len(stats.SpendingStats) != 3 {
		t.Fatalf("expected all 3 spending buckets present, got %d", len(stats.SpendingStats))
	}

	behaviorTotal := 0
	percentTotal := 0.0
	for _, stat := range stats.BehaviorStats {
		behaviorTotal += stat.Count
		percentTotal += stat.Percentage
	}
	if behaviorTotal != stats.TotalClients {
		t.Fatalf("behavior counts sum to %d, expected %d", behaviorTotal, stats.TotalClients)
	}
	if percentTotal < 99.9 || percentTotal > 100.1 {
		t.Fatalf("behavior percentages sum to %v, expected 100", percentTotal)
	}

	spendingTotal := 0
	for _, stat := range stats.SpendingStats {
		spendingTotal += stat.Count
	}
	if spendingTotal != stats.TotalClients {
		t.Fatalf("spending counts sum to %d, expected %d", spendingTotal, stats.TotalClients)
	}
}

func TestStatsGlobalSummary(t *testing.T) {
	all := []models.Order{
		clientOrder("a@test.com", daysAgo(3), 100),
		clientOrder("a@test.com", daysAgo(1), 200),
		clientOrder("b@test.com", daysAgo(10), 300),
	}

	stats := Stats(Build(all, testNow))

	// 600 spent over 3 orders.
	if stats.AvgOrderValue != 200 {
		t.Fatalf("expected avg order value 200, got %v", stats.AvgOrderValue)
	}
	// 1 of 2 clients has more than one order.
	if stats.RepeatCustomerRate != 0.5 {
		t.Fatalf("expected repeat rate 0.5, got %v", stats.RepeatCustomerRate)
	}
	if stats.AvgOrdersPerClient != 1.5 {
		t.Fatalf("expected 1.5 orders per client, got %v", stats.AvgOrdersPerClient)
	}
}

func TestStatsEmptyInput(t *testing.T) {
	stats := Stats(nil)
	if stats.TotalClients != 0 || stats.AvgOrderValue != 0 || stats.RepeatCustomerRate != 0 {
		t.Fatalf("expected zeroed stats for empty input, got %+v", stats)
	}
	if len(stats.BehaviorStats) != 6 || len(stats.SpendingStats) != 3 {
		t.Fatal("expected full partitions even with no clients")
	}
}
