package request

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/id"
	"stockyard/internal/core/types"
)

func TestNewRequest(t *testing.T) {
	r := NewRequest(KindPurchase, "wh-1")

	assert.Equal(t, StatusCreated, r.Status)
	assert.Equal(t, KindPurchase, r.Kind)
	assert.False(t, id.IsNil(r.ID))
	require.NoError(t, r.Validate(context.Background()))
}

func TestValidate_TransferNeedsSource(t *testing.T) {
	r := NewRequest(KindTransfer, "wh-1")
	require.Error(t, r.Validate(context.Background()))

	src := "wh-2"
	r.SourceWarehouseID = &src
	require.NoError(t, r.Validate(context.Background()))
}

func TestValidate_UnknownStatusRejected(t *testing.T) {
	r := NewRequest(KindPurchase, "wh-1")
	r.Status = "teleported"
	require.Error(t, r.Validate(context.Background()))

	// Any known status is acceptable regardless of the previous one
	for _, s := range []string{StatusCompleted, StatusCreated, StatusCancelled} {
		r.Status = s
		require.NoError(t, r.Validate(context.Background()))
	}
}

func TestValidate_Lines(t *testing.T) {
	r := NewRequest(KindPurchase, "wh-1")
	r.Lines = []Line{{ProductID: "", Quantity: 1}}
	require.Error(t, r.Validate(context.Background()))

	r.Lines = []Line{{ProductID: "p1", Quantity: 0}}
	require.Error(t, r.Validate(context.Background()))

	r.Lines = []Line{{ProductID: "p1", Quantity: 2, UnitPrice: types.MustMoney("-1")}}
	require.Error(t, r.Validate(context.Background()))

	r.Lines = []Line{{ProductID: "p1", Quantity: 2, UnitPrice: types.MustMoney("9.99")}}
	require.NoError(t, r.Validate(context.Background()))
}

func TestTotalAmount(t *testing.T) {
	r := NewRequest(KindPurchase, "wh-1")
	r.Lines = []Line{
		{ProductID: "p1", Quantity: 2, UnitPrice: types.MustMoney("10.50")},
		{ProductID: "p2", Quantity: 3, UnitPrice: types.MustMoney("0.99")},
	}

	assert.True(t, r.TotalAmount().Equal(types.MustMoney("23.97")))
}
