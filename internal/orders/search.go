package orders

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fields the generic substring tier scans. Every search token must hit at
// least one of these (OR across fields, AND across tokens).
var searchFields = []string{
	"user.name",
	"user.lastName",
	"user.email",
	"items.name",
	"address.address",
	"address.city",
	"address.phone",
	"address.betweenStreets",
	"paymentMethod",
	"status",
	"notesOwn",
	"orderType",
}

// Month names the admin types into the search box. Spanish locale, full names
// and the usual abbreviations.
var spanishMonths = map[string]int{
	"enero": 1, "ene": 1,
	"febrero": 2, "feb": 2,
	"marzo": 3, "mar": 3,
	"abril": 4, "abr": 4,
	"mayo": 5, "may": 5,
	"junio": 6, "jun": 6,
	"julio": 7, "jul": 7,
	"agosto": 8, "ago": 8,
	"septiembre": 9, "setiembre": 9, "sep": 9, "sept": 9, "set": 9,
	"octubre": 10, "oct": 10,
	"noviembre": 11, "nov": 11,
	"diciembre": 12, "dic": 12,
}

var hexIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// SearchFilter builds the tiered search filter over the orders collection.
// Each whitespace token is matched through a fallback chain: full literal date
// -> day+month pattern -> day-only / month-only pattern -> case-insensitive
// substring scan. Tokens AND together. If the whole raw string looks like a
// document id, an _id equality is ORed in.
func SearchFilter(search string) bson.M {
	raw := strings.TrimSpace(search)
	if raw == "" {
		return bson.M{}
	}

	tokens := strings.Fields(raw)
	clauses := make([]bson.M, 0, len(tokens))
	for _, token := range tokens {
		clauses = append(clauses, tokenFilter(token))
	}

	var combined bson.M
	if len(clauses) == 1 {
		combined = clauses[0]
	} else {
		combined = bson.M{"$and": clauses}
	}

	if hexIDPattern.MatchString(raw) {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			return bson.M{"$or": []bson.M{combined, {"_id": id}}}
		}
	}

	return combined
}

func tokenFilter(token string) bson.M {
	lower := strings.ToLower(token)

	if day, ok := parseFullDate(lower); ok {
		return deliveryDayEquals(day)
	}
	if day, month, ok := parseDayMonth(lower); ok {
		return bson.M{"$expr": bson.M{"$and": []bson.M{
			{"$eq": []interface{}{bson.M{"$dayOfMonth": "$deliveryDay"}, day}},
			{"$eq": []interface{}{bson.M{"$month": "$deliveryDay"}, month}},
		}}}
	}
	if day, ok := parseDayPart(lower); ok {
		return bson.M{"$expr": bson.M{
			"$eq": []interface{}{bson.M{"$dayOfMonth": "$deliveryDay"}, day},
		}}
	}
	if month, ok := spanishMonths[lower]; ok {
		return bson.M{"$expr": bson.M{
			"$eq": []interface{}{bson.M{"$month": "$deliveryDay"}, month},
		}}
	}

	return substringFilter(token)
}

func substringFilter(token string) bson.M {
	pattern := regexp.QuoteMeta(token)
	or := make([]bson.M, 0, len(searchFields))
	for _, field := range searchFields {
		or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return bson.M{"$or": or}
}

func deliveryDayEquals(day time.Time) bson.M {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return bson.M{"deliveryDay": bson.M{
		"$gte": start,
		"$lt":  start.Add(24 * time.Hour),
	}}
}

// parseFullDate accepts day-month-year tokens: "2-1-2024", "02/01/24",
// "2-ene-2024". Year is required; yearless tokens fall to the pattern tiers.
func parseFullDate(token string) (time.Time, bool) {
	parts := splitDateToken(token)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, ok := parseDayPart(parts[0])
	if !ok {
		return time.Time{}, false
	}
	month, ok := parseMonthPart(parts[1])
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}
	if year < 2000 || year > 2100 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// parseDayMonth accepts yearless "15-jul" or "15/7" tokens and matches the
// delivery day against any year.
func parseDayMonth(token string) (int, int, bool) {
	parts := splitDateToken(token)
	if len(parts) != 2 {
		return 0, 0, false
	}
	day, ok := parseDayPart(parts[0])
	if !ok {
		return 0, 0, false
	}
	month, ok := parseMonthPart(parts[1])
	if !ok {
		return 0, 0, false
	}
	return day, month, true
}

func parseDayPart(part string) (int, bool) {
	day, err := strconv.Atoi(part)
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

func parseMonthPart(part string) (int, bool) {
	if month, ok := spanishMonths[part]; ok {
		return month, true
	}
	month, err := strconv.Atoi(part)
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}

func splitDateToken(token string) []string {
	return strings.FieldsFunc(token, func(r rune) bool {
		return r == '-' || r == '/' || r == '.'
	})
}
