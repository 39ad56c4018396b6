package clients

import "backoffice/internal/models"

var behaviorOrder = []string{
	models.BehaviorNew,
	models.BehaviorTracking,
	models.BehaviorActive,
	models.BehaviorPossibleInactive,
	models.BehaviorLost,
	models.BehaviorRecovered,
}

var spendingOrder = []string{
	models.SpendingPremium,
	models.SpendingStandard,
	models.SpendingBasic,
}

// Stats summarizes both partitions of a categorization run plus the global
// numbers the dashboard header shows. Every category appears in its partition
// even at zero, so counts always sum to the client total.
func Stats(list []models.ClientCategorization) models.ClientStats {
	stats := models.ClientStats{
		TotalClients: len(list),
	}

	totalSpent := 0.0
	totalOrders := 0
	repeatClients := 0
	monthlySpendSum := 0.0

	behaviorSpent := make(map[string]float64)
	behaviorCount := make(map[string]int)
	spendingSpent := make(map[string]float64)
	spendingCount := make(map[string]int)

	for _, client := range list {
		totalSpent += client.TotalSpent
		totalOrders += client.TotalOrders
		monthlySpendSum += client.MonthlySpend
		if client.TotalOrders > 1 {
			repeatClients++
		}

		behaviorCount[client.BehaviorCategory]++
		behaviorSpent[client.BehaviorCategory] += client.TotalSpent
		spendingCount[client.SpendingCategory]++
		spendingSpent[client.SpendingCategory] += client.TotalSpent
	}

	stats.BehaviorStats = partitionStats(behaviorOrder, behaviorCount, behaviorSpent, len(list))
	stats.SpendingStats = partitionStats(spendingOrder, spendingCount, spendingSpent, len(list))

	if totalOrders > 0 {
		stats.AvgOrderValue = totalSpent / float64(totalOrders)
	}
	if len(list) > 0 {
		stats.RepeatCustomerRate = float64(repeatClients) / float64(len(list))
		stats.AvgOrdersPerClient = float64(totalOrders) / float64(len(list))
		stats.AvgMonthlySpend = monthlySpendSum / float64(len(list))
	}

	return stats
}

func partitionStats(order []string, counts map[string]int, spent map[string]float64, total int) []models.CategoryStat {
	out := make([]models.CategoryStat, 0, len(order))
	for _, category := range order {
		stat := models.CategoryStat{
			Category:   category,
			Count:      counts[category],
			TotalSpent: spent[category],
		}
		if stat.Count > 0 {
			stat.AvgSpent = stat.TotalSpent / float64(stat.Count)
		}
		if total > 0 {
			stat.Percentage = float64(stat.Count) / float64(total) * 100
		}
		out = append(out, stat)
	}
	return out
}
