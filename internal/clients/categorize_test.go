package clients

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backoffice/internal/models"
)

var testNow = time.Date(2024, time.August, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(days int) time.Time {
	return testNow.AddDate(0, 0, -days)
}

func clientOrder(email string, created time.Time, total float64, items ...models.OrderItem) models.Order {
	return models.Order{
		ID:        primitive.NewObjectID(),
		Status:    models.StatusDelivered,
		Total:     total,
		CreatedAt: created,
		User:      models.OrderUser{Name: "Ana", LastName: "Gomez", Email: email},
		Address:   models.Address{Address: "Calle Falsa 123", City: "CABA", Phone: "1122334455"},
		Items:     items,
	}
}

func TestBehaviorRecoveredTakesPrecedenceOverActive(t *testing.T) {
	// Two orders: 150 days ago and 10 days ago. The 140-day gap plus a
	// recent order means recovered, even though the recent order alone
	// would read as active.
	all := []models.Order{
		clientOrder("ana@test.com", daysAgo(150), 100),
		clientOrder("ana@test.com", daysAgo(10), 100),
	}

	list := Build(all, testNow)
	if len(list) != 1 {
		t.Fatalf("expected 1 client, got %d", len(list))
	}
	if list[0].BehaviorCategory != models.BehaviorRecovered {
		t.Fatalf("expected recovered, got %s", list[0].BehaviorCategory)
	}
}

func TestBehaviorRecoveredBeatsGeneralRulesForMultiOrderClients(t *testing.T) {
	all := []models.Order{
		clientOrder("b@test.com", daysAgo(300), 100),
		clientOrder("b@test.com", daysAgo(290), 100),
		clientOrder("b@test.com", daysAgo(140), 100),
		clientOrder("b@test.com", daysAgo(10), 100),
	}

	list := Build(all, testNow)
	if list[0].BehaviorCategory != models.BehaviorRecovered {
		t.Fatalf("expected recovered, got %s", list[0].BehaviorCategory)
	}
}

func TestBehaviorSingleOrderBoundaries(t *testing.T) {
	tests := []struct {
		daysAgo int
		want    string
	}{
		{7, models.BehaviorNew},
		{8, models.BehaviorTracking},
		{30, models.BehaviorTracking},
		{31, models.BehaviorActive},
		{91, models.BehaviorPossibleInactive},
		{120, models.BehaviorPossibleInactive},
		{121, models.BehaviorLost},
	}

	for _, tt := range tests {
		all := []models.Order{clientOrder("c@test.com", daysAgo(tt.daysAgo), 100)}
		list := Build(all, testNow)
		if got := list[0].BehaviorCategory; got != tt.want {
			t.Fatalf("single order %d days ago: expected %s, got %s", tt.daysAgo, tt.want, got)
		}
	}
}

func TestBehaviorMultiOrderInactivity(t *testing.T) {
	// Short gap between orders, so recovered never fires; days since last
	// order decides.
	all := []models.Order{
		clientOrder("d@test.com", daysAgo(160), 100),
		clientOrder("d@test.com", daysAgo(130), 100),
	}

	list := Build(all, testNow)
	if list[0].BehaviorCategory != models.BehaviorLost {
		t.Fatalf("expected lost after 130 inactive days, got %s", list[0].BehaviorCategory)
	}
}

func TestWeightExtraction(t *testing.T) {
	order := clientOrder("e@test.com", daysAgo(1), 100,
		models.OrderItem{Name: "Barfer Perro Pollo", Options: []models.ItemOption{
			{Name: "5 KG", Price: 100, Quantity: 2},
		}},
		models.OrderItem{Name: "Big Dog", Options: []models.ItemOption{
			{Name: "Default", Price: 50, Quantity: 1},
		}},
		models.OrderItem{Name: "Complementos Pack", Options: []models.ItemOption{
			{Name: "10 KG", Price: 30, Quantity: 1},
		}},
	)

	if got := OrderWeight(order); got != 25 {
		t.Fatalf("expected 25kg (5x2 + 15 + 0), got %v", got)
	}
}

func TestWeightHandlesDecimalAndCompactOptions(t *testing.T) {
	item := models.OrderItem{Name: "Barfer Gato", Options: []models.ItemOption{
		{Name: "2,5 kg", Quantity: 2},
		{Name: "10KG", Quantity: 1},
		{Name: "Unidad", Quantity: 3},
	}}

	if got := ItemWeight(item); got != 15 {
		t.Fatalf("expected 15kg (2.5x2 + 10 + 0), got %v", got)
	}
}

func TestSpendingCategoryThresholds(t *testing.T) {
	tests := []struct {
		kg   float64
		want string
	}{
		{16, models.SpendingPremium},
		{15, models.SpendingStandard},
		{6, models.SpendingStandard},
		{5, models.SpendingBasic},
		{0, models.SpendingBasic},
	}
	for _, tt := range tests {
		if got := spendingFor(tt.kg); got != tt.want {
			t.Fatalf("%vkg: expected %s, got %s", tt.kg, tt.want, got)
		}
	}
}

func TestSpendingUsesTrailing30DaysOnly(t *testing.T) {
	// 20kg bought 60 days ago, 6kg bought 5 days ago: only the recent 6kg
	// counts, so the client is standard, not premium.
	all := []models.Order{
		clientOrder("f@test.com", daysAgo(60), 100,
			models.OrderItem{Name: "Barfer Perro", Options: []models.ItemOption{{Name: "10 KG", Quantity: 2}}},
		),
		clientOrder("f@test.com", daysAgo(5), 100,
			models.OrderItem{Name: "Barfer Perro", Options: []models.ItemOption{{Name: "3 KG", Quantity: 2}}},
		),
	}

	list := Build(all, testNow)
	client := list[0]
	if client.TotalWeight != 26 {
		t.Fatalf("expected lifetime weight 26kg, got %v", client.TotalWeight)
	}
	if client.Last30DaysWeight != 6 {
		t.Fatalf("expected 6kg in the last 30 days, got %v", client.Last30DaysWeight)
	}
	if client.SpendingCategory != models.SpendingStandard {
		t.Fatalf("expected standard, got %s", client.SpendingCategory)
	}
}

func TestIdentityFallsBackToEmail(t *testing.T) {
	withID := clientOrder("same@test.com", daysAgo(3), 100)
	withID.User.UserID = "user-1"
	alsoWithID := clientOrder("other@test.com", daysAgo(2), 100)
	alsoWithID.User.UserID = "user-1"
	guestA := clientOrder("Guest@Test.com", daysAgo(5), 50)
	guestB := clientOrder("guest@test.com", daysAgo(1), 70)

	list := Build([]models.Order{withID, alsoWithID, guestA, guestB}, testNow)
	if len(list) != 2 {
		t.Fatalf("expected 2 clients (one per id, one per email), got %d", len(list))
	}

	for _, client := range list {
		switch client.ID {
		case "user-1":
			if client.TotalOrders != 2 {
				t.Fatalf("expected 2 orders grouped by user id, got %d", client.TotalOrders)
			}
		case "guest@test.com":
			if client.TotalOrders != 2 || client.TotalSpent != 120 {
				t.Fatalf("expected guest orders merged case-insensitively, got %+v", client)
			}
		default:
			t.Fatalf("unexpected client identity %q", client.ID)
		}
	}
}

func TestDerivedMetrics(t *testing.T) {
	all := []models.Order{
		clientOrder("g@test.com", daysAgo(90), 300),
		clientOrder("g@test.com", daysAgo(10), 100),
	}

	list := Build(all, testNow)
	client := list[0]
	if client.AvgOrderValue != 200 {
		t.Fatalf("expected avg order value 200, got %v", client.AvgOrderValue)
	}
	// 90 days = 3 months; 400 / 3.
	want := 400.0 / 3
	if client.MonthlySpend != want {
		t.Fatalf("expected monthly spend %v, got %v", want, client.MonthlySpend)
	}
}

func TestMonthlySpendFloorsAtOneMonth(t *testing.T) {
	all := []models.Order{clientOrder("h@test.com", daysAgo(2), 500)}

	list := Build(all, testNow)
	if list[0].MonthlySpend != 500 {
		t.Fatalf("expected monthly spend floored to lifetime spend, got %v", list[0].MonthlySpend)
	}
}

func TestMissingAddressGetsPlaceholders(t *testing.T) {
	order := clientOrder("i@test.com", daysAgo(1), 100)
	order.Address = models.Address{}

	list := Build([]models.Order{order}, testNow)
	client := list[0]
	if client.Phone != "not available" || client.LastAddress != "not available" {
		t.Fatalf("expected placeholders for missing address, got phone=%q address=%q", client.Phone, client.LastAddress)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	all := []models.Order{
		clientOrder("j@test.com", daysAgo(150), 100),
		clientOrder("j@test.com", daysAgo(10), 100),
		clientOrder("k@test.com", daysAgo(3), 250),
		clientOrder("l@test.com", daysAgo(200), 80),
	}

	first := Build(all, testNow)
	second := Build(all, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical categorizations across runs on unchanged orders")
	}

	if !reflect.DeepEqual(Stats(first), Stats(second)) {
		t.Fatal("expected identical aggregate statistics across runs")
	}
}

func TestFilterByCategory(t *testing.T) {
	all := []models.Order{
		clientOrder("m@test.com", daysAgo(3), 100),
		clientOrder("n@test.com", daysAgo(200), 100),
	}

	list := Build(all, testNow)

	active := Filter(list, models.BehaviorNew, "")
	if len(active) != 1 || active[0].Email != "m@test.com" {
		t.Fatalf("expected only the new client, got %+v", active)
	}

	if got := Filter(list, "", ""); len(got) != 2 {
		t.Fatalf("expected empty filter to pass everything, got %d", len(got))
	}
}
