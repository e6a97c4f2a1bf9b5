package infra

import (
	"testing"
	"time"

	"andespos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTicketPDF(t *testing.T) {
	sale := &model.Sale{
		ID:            uuid.New(),
		Total:         decimal.NewFromInt(22),
		PaymentMethod: model.PaymentCash,
		OccurredAt:    time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		Lines: []model.SaleLine{
			{
				ProductID: uuid.New(),
				Quantity:  2,
				UnitPrice: decimal.NewFromInt(8),
				Product:   &model.Product{Name: "Coffee"},
			},
			{
				// Deleted product: rendered by id, must not panic.
				ProductID: uuid.New(),
				Quantity:  3,
				UnitPrice: decimal.NewFromInt(2),
			},
		},
	}

	pdf, err := RenderTicketPDF("Demo Store", sale)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
