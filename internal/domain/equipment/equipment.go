// Package equipment implements the store equipment completeness check:
// pure functions comparing a store's current equipment against the fixed
// reference table of mandatory categories.
package equipment

// CategoryConfig is one row of the static reference table.
type CategoryConfig struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	LabelShort string `json:"labelShort"`
	Icon       string `json:"icon"`

	// MinCount is the required number of items. Only presence is
	// enforced today; the count is carried for future hardening.
	MinCount int `json:"minCount"`
}

// mandatoryCategories is the reference list of categories every store
// must hold. Order matters: completeness reports preserve it.
var mandatoryCategories = []CategoryConfig{
	{Code: "SERVER", Label: "Server", LabelShort: "SRV", Icon: "server", MinCount: 1},
	{Code: "ROUTER", Label: "Router", LabelShort: "RTR", Icon: "router", MinCount: 1},
	{Code: "SWITCH", Label: "Network switch", LabelShort: "SW", Icon: "switch", MinCount: 1},
	{Code: "FIREWALL", Label: "Firewall appliance", LabelShort: "FW", Icon: "shield", MinCount: 1},
	{Code: "UPS", Label: "Uninterruptible power supply", LabelShort: "UPS", Icon: "battery", MinCount: 1},
	{Code: "RACK", Label: "Equipment rack", LabelShort: "RACK", Icon: "rack", MinCount: 1},
	{Code: "ACCESS_POINT", Label: "Wireless access point", LabelShort: "AP", Icon: "wifi", MinCount: 2},
	{Code: "WORKSTATION", Label: "Workstation", LabelShort: "WS", Icon: "desktop", MinCount: 1},
	{Code: "MONITOR", Label: "Monitor", LabelShort: "MON", Icon: "monitor", MinCount: 1},
	{Code: "PRINTER", Label: "Receipt printer", LabelShort: "PRN", Icon: "printer", MinCount: 1},
	{Code: "SCANNER", Label: "Barcode scanner", LabelShort: "SCAN", Icon: "barcode", MinCount: 2},
	{Code: "POS_TERMINAL", Label: "POS terminal", LabelShort: "POS", Icon: "terminal", MinCount: 1},
	{Code: "CASH_DRAWER", Label: "Cash drawer", LabelShort: "CASH", Icon: "drawer", MinCount: 1},
	{Code: "CCTV", Label: "Surveillance camera", LabelShort: "CAM", Icon: "camera", MinCount: 2},
}

// configByCode is derived from mandatoryCategories at init.
var configByCode = func() map[string]CategoryConfig {
	m := make(map[string]CategoryConfig, len(mandatoryCategories))
	for _, c := range mandatoryCategories {
		m[c.Code] = c
	}
	return m
}()

// Item is an equipment instance held at a store, reduced to the fields
// the completeness and grouping functions need.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// MandatoryCategories returns a copy of the reference table in order.
func MandatoryCategories() []CategoryConfig {
	out := make([]CategoryConfig, len(mandatoryCategories))
	copy(out, mandatoryCategories)
	return out
}

// ConfigByCode looks up reference configuration for a category code.
func ConfigByCode(code string) (CategoryConfig, bool) {
	cfg, ok := configByCode[code]
	return cfg, ok
}

// MissingMandatory returns the mandatory categories with no item present
// in the given equipment list, preserving reference table order. A store
// with no equipment at all is missing everything.
func MissingMandatory(items []Item) []CategoryConfig {
	present := make(map[string]struct{}, len(items))
	for _, it := range items {
		present[it.Category] = struct{}{}
	}

	missing := make([]CategoryConfig, 0)
	for _, cfg := range mandatoryCategories {
		if _, ok := present[cfg.Code]; !ok {
			missing = append(missing, cfg)
		}
	}
	return missing
}

// GroupByCategory partitions a flat equipment list into per-category
// groups. Group order follows first appearance in the input; item order
// within a group is preserved.
func GroupByCategory(items []Item) ([]string, map[string][]Item) {
	order := make([]string, 0)
	groups := make(map[string][]Item)

	for _, it := range items {
		if _, seen := groups[it.Category]; !seen {
			order = append(order, it.Category)
		}
		groups[it.Category] = append(groups[it.Category], it)
	}

	return order, groups
}
