package export

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backoffice/internal/models"
)

func TestOrdersWorkbook(t *testing.T) {
	orders := []models.Order{
		{
			ID:            primitive.NewObjectID(),
			Status:        models.StatusConfirmed,
			Total:         1250,
			SubTotal:      1100,
			ShippingPrice: 150,
			PaymentMethod: "efectivo",
			OrderType:     models.OrderTypeRetail,
			CreatedAt:     time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC),
			DeliveryDay:   time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
			User:          models.OrderUser{Name: "Ana", LastName: "Gomez", Email: "ana@test.com"},
			Address:       models.Address{Address: "Calle Falsa 123", City: "CABA", Phone: "1122334455"},
			Items: []models.OrderItem{
				{Name: "Barfer Perro Pollo", Options: []models.ItemOption{{Name: "5 KG", Price: 550, Quantity: 2}}},
			},
		},
	}

	workbook, err := OrdersWorkbook(orders)
	if err != nil {
		t.Fatalf("OrdersWorkbook returned error: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one data row, got %d rows", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][len(headers)-1] != "Notas" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][3] != "Ana Gomez" {
		t.Fatalf("expected client name in row, got %v", rows[1])
	}
	if rows[1][14] != "Barfer Perro Pollo (5 KG x2)" {
		t.Fatalf("unexpected items summary: %q", rows[1][14])
	}
}

func TestItemsSummaryMultipleOptions(t *testing.T) {
	got := itemsSummary([]models.OrderItem{
		{Name: "Barfer Gato", Options: []models.ItemOption{
			{Name: "5 KG", Quantity: 1},
			{Name: "10 KG", Quantity: 2},
		}},
		{Name: "Hueso Recreativo", Options: []models.ItemOption{
			{Name: "Unidad", Quantity: 3},
		}},
	})

	want := "Barfer Gato (5 KG x1, 10 KG x2); Hueso Recreativo (Unidad x3)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
