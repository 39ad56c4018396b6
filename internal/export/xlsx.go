// Package export renders order lists into spreadsheet workbooks for the
// dashboard's download button.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"backoffice/internal/models"
)

const sheetName = "Pedidos"

var headers = []string{
	"ID", "Creado", "Entrega", "Cliente", "Email", "Teléfono", "Dirección",
	"Ciudad", "Tipo", "Pago", "Estado", "Subtotal", "Envío", "Total",
	"Productos", "Notas",
}

// OrdersWorkbook builds one sheet with a header row plus one row per order.
// The caller owns closing the file.
func OrdersWorkbook(orders []models.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, order := range orders {
		values := []interface{}{
			order.ID.Hex(),
			order.CreatedAt.Format("2006-01-02"),
			order.DeliveryDay.Format("2006-01-02"),
			strings.TrimSpace(order.User.Name + " " + order.User.LastName),
			order.User.Email,
			order.Address.Phone,
			order.Address.Address,
			order.Address.City,
			order.OrderType,
			order.PaymentMethod,
			order.Status,
			order.SubTotal,
			order.ShippingPrice,
			order.Total,
			itemsSummary(order.Items),
			order.Notes,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func itemsSummary(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		options := make([]string, 0, len(item.Options))
		for _, option := range item.Options {
			options = append(options, fmt.Sprintf("%s x%d", option.Name, option.Quantity))
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", item.Name, strings.Join(options, ", ")))
	}
	return strings.Join(parts, "; ")
}
