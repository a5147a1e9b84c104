package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockyard/internal/core/entity"
	"stockyard/internal/domain/catalogs/warehouse"
)

type flatRow struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Hidden string `db:"-"`
	NoTag  string
}

func TestExtractDBColumns_Flat(t *testing.T) {
	cols := ExtractDBColumns[flatRow]()
	assert.Equal(t, []string{"id", "name"}, cols)
}

func TestExtractDBColumns_Embedded(t *testing.T) {
	cols := ExtractDBColumns[warehouse.Warehouse]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "type")
	assert.Contains(t, cols, "is_default")
	assert.NotContains(t, cols, "-")
}

func TestStructToMap(t *testing.T) {
	row := flatRow{ID: "1", Name: "shelf", Hidden: "x", NoTag: "y"}

	m := StructToMap(row)
	assert.Equal(t, "1", m["id"])
	assert.Equal(t, "shelf", m["name"])
	assert.Len(t, m, 2)
}

func TestStructToMap_Embedded(t *testing.T) {
	wh := warehouse.NewWarehouse("WH-1", "Main", warehouse.TypeMain)

	m := StructToMap(wh)
	assert.Equal(t, "WH-1", m["code"])
	assert.Equal(t, "Main", m["name"])
	assert.Equal(t, wh.ID, m["id"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}

func TestStructToMap_DocumentIgnoresLines(t *testing.T) {
	var zero entity.Document
	m := StructToMap(zero)
	assert.Contains(t, m, "status")
	assert.Contains(t, m, "number")
}
