package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/domain/equipment"
)

func TestFromCompletenessReport_MissingEntryKeys(t *testing.T) {
	report := &equipment.CompletenessReport{
		WarehouseID: "wh-1",
		Complete:    false,
		Missing:     equipment.MissingMandatory(nil),
	}

	resp := FromCompletenessReport(report)
	require.Len(t, resp.Missing, len(equipment.MandatoryCategories()))

	raw, err := json.Marshal(resp.Missing[0])
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Clients read the reference code under "category", not "code"
	assert.Equal(t, "SERVER", decoded["category"])
	assert.NotContains(t, decoded, "code")
	assert.Equal(t, "Server", decoded["label"])
	assert.Equal(t, "SRV", decoded["labelShort"])
}

func TestFromCompletenessReport_PreservesTableOrder(t *testing.T) {
	reference := equipment.MandatoryCategories()
	report := &equipment.CompletenessReport{
		WarehouseID: "wh-1",
		Missing:     reference,
	}

	resp := FromCompletenessReport(report)
	require.Len(t, resp.Missing, len(reference))
	for i, cfg := range reference {
		assert.Equal(t, cfg.Code, resp.Missing[i].Category)
	}
}
