package clients

import (
	"regexp"
	"strconv"
	"strings"

	"backoffice/internal/models"
)

// Option names carry the SKU weight, e.g. "5 KG" or "10KG".
var weightPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*kg`)

// Big Dog boxes always weigh 15kg whatever the option says.
const bigDogWeightKG = 15.0

// ItemWeight extracts the purchased kilograms of one line item. Same fragility
// as the category classifier: the rule keys on product and option names, so a
// rename silently changes historical weights.
func ItemWeight(item models.OrderItem) float64 {
	name := strings.ToLower(item.Name)

	if strings.Contains(name, "complemento") {
		return 0
	}

	if strings.Contains(name, "big dog") {
		units := 0
		for _, option := range item.Options {
			units += option.Quantity
		}
		return bigDogWeightKG * float64(units)
	}

	total := 0.0
	for _, option := range item.Options {
		match := weightPattern.FindStringSubmatch(option.Name)
		if match == nil {
			continue
		}
		kg, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
		if err != nil {
			continue
		}
		total += kg * float64(option.Quantity)
	}
	return total
}

// OrderWeight sums the weights of every line item in an order.
func OrderWeight(order models.Order) float64 {
	total := 0.0
	for _, item := range order.Items {
		total += ItemWeight(item)
	}
	return total
}
