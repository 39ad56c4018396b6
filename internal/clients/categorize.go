// Package clients derives the client segmentation model from confirmed and
// delivered orders. Everything is recomputed from scratch per request and
// categorization is all-or-nothing: a store failure fails the whole request,
// but a client missing optional fields just gets placeholders.
package clients

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"backoffice/internal/models"
	"backoffice/internal/orders"
)

var ErrCategorize = errors.New("could not categorize clients")

const notAvailable = "not available"

// Behavior thresholds in days.
const (
	newClientMaxDays    = 7
	trackingMaxDays     = 30
	inactiveAfterDays   = 90
	lostAfterDays       = 120
	recoveredGapDays    = 120
	recoveredRecentDays = 90
	spendingWindowDays  = 30
	premiumThresholdKG  = 15.0
	standardThresholdKG = 5.0
)

// Categorize computes one ClientCategorization per distinct client identity
// found in confirmed or delivered orders.
func Categorize(ctx context.Context, src orders.Source, now time.Time) ([]models.ClientCategorization, error) {
	all, err := src.Orders(ctx, bson.M{
		"status": bson.M{"$in": []string{models.StatusConfirmed, models.StatusDelivered}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategorize, err)
	}
	return Build(all, now), nil
}

// Build is the pure categorization core. Orders group by user id when
// present, by lowercased email otherwise — guest orders have no stable id, so
// the email fallback decides which historical orders count as the same
// customer. Changing the fallback rewrites history; don't.
func Build(all []models.Order, now time.Time) []models.ClientCategorization {
	groups := make(map[string][]models.Order)
	for _, order := range all {
		key := identityKey(order.User)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], order)
	}

	out := make([]models.ClientCategorization, 0, len(groups))
	for key, group := range groups {
		out = append(out, buildOne(key, group, now))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSpent != out[j].TotalSpent {
			return out[i].TotalSpent > out[j].TotalSpent
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Filter narrows a categorization list to one behavior and/or spending
// category. Empty filters pass everything through.
func Filter(list []models.ClientCategorization, behavior, spending string) []models.ClientCategorization {
	if behavior == "" && spending == "" {
		return list
	}
	out := make([]models.ClientCategorization, 0, len(list))
	for _, client := range list {
		if behavior != "" && client.BehaviorCategory != behavior {
			continue
		}
		if spending != "" && client.SpendingCategory != spending {
			continue
		}
		out = append(out, client)
	}
	return out
}

// TableRows flattens categorizations into the dashboard table shape.
func TableRows(list []models.ClientCategorization) []models.ClientTableRow {
	rows := make([]models.ClientTableRow, 0, len(list))
	for _, client := range list {
		rows = append(rows, models.ClientTableRow{
			ID:               client.ID,
			Name:             client.Name,
			Email:            client.Email,
			Phone:            client.Phone,
			LastOrder:        client.LastOrder,
			TotalSpent:       client.TotalSpent,
			TotalOrders:      client.TotalOrders,
			BehaviorCategory: client.BehaviorCategory,
			SpendingCategory: client.SpendingCategory,
		})
	}
	return rows
}

func identityKey(user models.OrderUser) string {
	if user.UserID != "" {
		return user.UserID
	}
	return strings.ToLower(strings.TrimSpace(user.Email))
}

func buildOne(key string, group []models.Order, now time.Time) models.ClientCategorization {
	sort.Slice(group, func(i, j int) bool {
		return group[i].CreatedAt.Before(group[j].CreatedAt)
	})

	latest := group[len(group)-1]

	client := models.ClientCategorization{
		ID:          key,
		Name:        strings.TrimSpace(latest.User.Name + " " + latest.User.LastName),
		Email:       strings.ToLower(strings.TrimSpace(latest.User.Email)),
		Phone:       valueOrPlaceholder(latest.Address.Phone),
		LastAddress: formatAddress(latest.Address),
		TotalOrders: len(group),
		FirstOrder:  group[0].CreatedAt,
		LastOrder:   latest.CreatedAt,
	}
	if client.Name == "" {
		client.Name = notAvailable
	}

	windowStart := now.AddDate(0, 0, -spendingWindowDays)
	dates := make([]time.Time, 0, len(group))
	for _, order := range group {
		dates = append(dates, order.CreatedAt)
		client.TotalSpent += order.Total
		weight := OrderWeight(order)
		client.TotalWeight += weight
		if !order.CreatedAt.Before(windowStart) {
			client.Last30DaysWeight += weight
		}
	}

	client.DaysSinceFirstOrder = daysBetween(client.FirstOrder, now)
	client.DaysSinceLastOrder = daysBetween(client.LastOrder, now)
	client.AvgOrderValue = client.TotalSpent / float64(client.TotalOrders)

	// Floor at one month so a brand-new client's monthly spend is not the
	// lifetime spend divided by a fraction of a day.
	months := float64(client.DaysSinceFirstOrder) / 30
	if months < 1 {
		months = 1
	}
	client.MonthlySpend = client.TotalSpent / months

	client.BehaviorCategory = behaviorFor(dates, now)
	client.SpendingCategory = spendingFor(client.Last30DaysWeight)

	return client
}

// behaviorFor runs the decision chain in precedence order; the first matching
// rule wins. The recovered check must run before the general activity rules:
// a client back after a long gap would otherwise read as plain "active".
func behaviorFor(dates []time.Time, now time.Time) string {
	n := len(dates)
	daysSinceLast := daysBetween(dates[n-1], now)

	if n > 1 {
		gap := daysBetween(dates[n-2], dates[n-1])
		if gap > recoveredGapDays && daysSinceLast <= recoveredRecentDays {
			return models.BehaviorRecovered
		}
	}

	if n == 1 {
		if daysSinceLast <= newClientMaxDays {
			return models.BehaviorNew
		}
		if daysSinceLast <= trackingMaxDays {
			return models.BehaviorTracking
		}
		// Aged single-order clients fall through to the general rules.
	}

	if daysSinceLast > lostAfterDays {
		return models.BehaviorLost
	}
	if daysSinceLast > inactiveAfterDays {
		return models.BehaviorPossibleInactive
	}

	return models.BehaviorActive
}

func spendingFor(last30DaysWeight float64) string {
	switch {
	case last30DaysWeight > premiumThresholdKG:
		return models.SpendingPremium
	case last30DaysWeight > standardThresholdKG:
		return models.SpendingStandard
	default:
		return models.SpendingBasic
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func valueOrPlaceholder(value string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return notAvailable
}

func formatAddress(address models.Address) string {
	street := strings.TrimSpace(address.Address)
	city := strings.TrimSpace(address.City)
	switch {
	case street == "" && city == "":
		return notAvailable
	case city == "":
		return street
	case street == "":
		return city
	default:
		return street + ", " + city
	}
}
