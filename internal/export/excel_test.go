package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kiosk/internal/domain"
)

func TestOrders_Workbook(t *testing.T) {
	orders := []domain.Order{
		{
			ID:            2,
			TransactionID: "tx-2",
			Items: []domain.OrderItem{
				{ProductID: 1, Name: "Rice", Quantity: 2, UnitPrice: 50},
				{ProductID: 2, Name: "Milk", Quantity: 1, UnitPrice: 55},
			},
			TotalPrice:    155,
			PaymentMethod: "card",
			Status:        domain.OrderStatusShipped,
			CustomerName:  "Jane",
			Street:        "1 Main St",
			City:          "Springfield",
			CreatedAt:     time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		},
		{ID: 1, TransactionID: "tx-1", Status: domain.OrderStatusPending},
	}

	buf, err := Orders(orders)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two orders

	require.Equal(t, headers, rows[0][:len(headers)])
	require.Equal(t, "2", rows[1][0])
	require.Equal(t, "Rice x2 @50.00; Milk x1 @55.00", rows[1][2])
	require.Equal(t, "shipped", rows[1][5])
	require.Equal(t, "1 Main St, Springfield", rows[1][9])
}

func TestOrders_Empty(t *testing.T) {
	buf, err := Orders(nil)
	require.NoError(t, err)
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
