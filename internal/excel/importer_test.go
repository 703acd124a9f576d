package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOptions(t *testing.T) {
	assert.Equal(t, []string{"Paris", "London", "Berlin"}, ParseOptions("Paris|London|Berlin"))
	assert.Equal(t, []string{"Paris", "London"}, ParseOptions(" Paris | London "))
	assert.Equal(t, []string{"Paris"}, ParseOptions("Paris||"))
	assert.Nil(t, ParseOptions(""))
	assert.Nil(t, ParseOptions("   "))
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 4, columnToIndex("E"))
	assert.Equal(t, 25, columnToIndex("Z"))
	assert.Equal(t, 26, columnToIndex("AA"))
	assert.Equal(t, 0, columnToIndex("a"))
}

func TestCellValue(t *testing.T) {
	row := []string{"Cells", " What is a cell? ", "short_answer"}
	assert.Equal(t, "Cells", cellValue(row, "A"))
	assert.Equal(t, "What is a cell?", cellValue(row, "B"))
	assert.Equal(t, "short_answer", cellValue(row, "C"))
	// Out of bounds and unset columns read as empty
	assert.Equal(t, "", cellValue(row, "F"))
	assert.Equal(t, "", cellValue(row, ""))
}
