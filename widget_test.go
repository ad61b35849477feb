package widgetstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	tests := []struct {
		name    string
		height  int
		width   int
		wantErr string
	}{
		{"valid", 14, 3, ""},
		{"negative height", -5, 4, "dimensions should be larger than zero: Dimensions(height=-5, width=4)"},
		{"zero width", 14, 0, "dimensions should be larger than zero: Dimensions(height=14, width=0)"},
		{"both zero", 0, 0, "dimensions should be larger than zero: Dimensions(height=0, width=0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDimensions(tt.height, tt.width)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, Dimensions{Height: tt.height, Width: tt.width}, d)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidDimensions)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMustDimensionsPanics(t *testing.T) {
	assert.Panics(t, func() { MustDimensions(1, -1) })
	assert.NotPanics(t, func() { MustDimensions(1, 1) })
}

func TestWidgetUpdateApply(t *testing.T) {
	orig := &Widget{ID: [16]byte{1}, Coordinates: testCoords, Dimensions: testDims, ZIndex: 3, LastModified: testNow}
	later := testNow.Add(1)

	next := WidgetUpdate{Coordinates: &Coordinates{X: 9, Y: 9}}.apply(orig, later)

	assert.Equal(t, Coordinates{X: 9, Y: 9}, next.Coordinates)
	assert.Equal(t, testDims, next.Dimensions)
	assert.Equal(t, 3, next.ZIndex)
	assert.Equal(t, later, next.LastModified)
	// the source snapshot is untouched
	assert.Equal(t, testCoords, orig.Coordinates)
	assert.Equal(t, testNow, orig.LastModified)
}

func TestShiftUp(t *testing.T) {
	orig := &Widget{ID: [16]byte{2}, Coordinates: testCoords, Dimensions: testDims, ZIndex: -1, LastModified: testNow}
	next := shiftUp(orig, testNow.Add(5))

	assert.Equal(t, orig.ID, next.ID)
	assert.Equal(t, 0, next.ZIndex)
	assert.Equal(t, -1, orig.ZIndex)
	assert.True(t, next.LastModified.After(orig.LastModified))
}
