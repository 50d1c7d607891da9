package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"kiosk/internal/domain"
)

const sheet = "Orders"

var headers = []string{
	"ID", "Transaction ID", "Items", "Total Price", "Payment Method", "Status",
	"Customer", "Email", "Phone", "Address", "Expected Delivery", "Created At",
}

// Orders рендерит журнал заказов в книгу xlsx, по строке на заказ
func Orders(orders []domain.Order) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, o := range orders {
		values := []any{
			o.ID,
			o.TransactionID,
			itemsSummary(o.Items),
			o.TotalPrice,
			o.PaymentMethod,
			string(o.Status),
			o.CustomerName,
			o.Email,
			o.Phone,
			address(o),
			formatTime(o.ExpectedDelivery),
			formatTime(o.CreatedAt),
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f.WriteToBuffer()
}

func itemsSummary(items []domain.OrderItem) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s x%d @%.2f", it.Name, it.Quantity, it.UnitPrice)
	}
	return b.String()
}

func address(o domain.Order) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{o.Street, o.City, o.State, o.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
