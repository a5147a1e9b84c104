package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingMandatory_EmptyStore(t *testing.T) {
	missing := MissingMandatory(nil)

	reference := MandatoryCategories()
	require.Len(t, missing, len(reference))
	for i, cfg := range missing {
		assert.Equal(t, reference[i].Code, cfg.Code)
	}
}

func TestMissingMandatory_FullyEquipped(t *testing.T) {
	var items []Item
	for _, cfg := range MandatoryCategories() {
		items = append(items, Item{ID: cfg.Code + "-1", Category: cfg.Code})
	}
	// Non-mandatory extras must not affect the result
	items = append(items, Item{ID: "x1", Category: "COFFEE_MACHINE"})

	assert.Empty(t, MissingMandatory(items))
}

func TestMissingMandatory_PartialStore(t *testing.T) {
	items := []Item{
		{ID: "r1", Category: "ROUTER"},
	}

	missing := MissingMandatory(items)

	codes := make([]string, len(missing))
	for i, cfg := range missing {
		codes[i] = cfg.Code
	}
	assert.NotContains(t, codes, "ROUTER")
	assert.Contains(t, codes, "SERVER")
	assert.Len(t, missing, len(MandatoryCategories())-1)

	// Order preserved: SERVER comes before SWITCH in the reference list
	assert.Equal(t, "SERVER", codes[0])
}

func TestMissingMandatory_DuplicatesCountOnce(t *testing.T) {
	items := []Item{
		{ID: "s1", Category: "SERVER"},
		{ID: "s2", Category: "SERVER"},
	}

	missing := MissingMandatory(items)
	for _, cfg := range missing {
		assert.NotEqual(t, "SERVER", cfg.Code)
	}
	assert.Len(t, missing, len(MandatoryCategories())-1)
}

func TestConfigByCode(t *testing.T) {
	cfg, ok := ConfigByCode("SERVER")
	require.True(t, ok)
	assert.Equal(t, "Server", cfg.Label)
	assert.Equal(t, "SRV", cfg.LabelShort)

	_, ok = ConfigByCode("NOPE")
	assert.False(t, ok)
}

func TestGroupByCategory(t *testing.T) {
	items := []Item{
		{ID: "a", Category: "SERVER"},
		{ID: "b", Category: "ROUTER"},
		{ID: "c", Category: "SERVER"},
		{ID: "d", Category: "UPS"},
	}

	order, groups := GroupByCategory(items)

	assert.Equal(t, []string{"SERVER", "ROUTER", "UPS"}, order)
	require.Len(t, groups["SERVER"], 2)
	assert.Equal(t, "a", groups["SERVER"][0].ID)
	assert.Equal(t, "c", groups["SERVER"][1].ID)
}

func TestGroupByCategory_Empty(t *testing.T) {
	order, groups := GroupByCategory(nil)
	assert.Empty(t, order)
	assert.Empty(t, groups)
}
