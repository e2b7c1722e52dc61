package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		input   string
		want    Orientation
		wantErr bool
	}{
		{input: "", want: Vertical},
		{input: "vertical", want: Vertical},
		{input: " Horizontal ", want: Horizontal},
		{input: "h", want: Horizontal},
		{input: "diagonal", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOrientation(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRectProjections(t *testing.T) {
	r := Rect{X: 2, Y: 10, Width: 6, Height: 4}

	assert.Equal(t, 10.0, r.Min(Vertical))
	assert.Equal(t, 12.0, r.Mid(Vertical))
	assert.Equal(t, 14.0, r.Max(Vertical))
	assert.Equal(t, 2.0, r.Min(Horizontal))
	assert.Equal(t, 5.0, r.Mid(Horizontal))
	assert.Equal(t, 8.0, r.Max(Horizontal))

	assert.False(t, r.IsEmpty())
	assert.True(t, Rect{Width: 3}.IsEmpty())
	assert.True(t, Rect{}.IsEmpty())
}

func TestDistances(t *testing.T) {
	size := Size{Width: 80, Height: 20}

	assert.Equal(t, 20.0, Vertical.PrimaryLength(size))
	assert.Equal(t, 80.0, Horizontal.PrimaryLength(size))

	// 0.75*L dominates L/m for m >= 4/3.
	assert.Equal(t, 15.0, Vertical.PrefetchDistance(size, 11))
	assert.Equal(t, 20.0, Vertical.PrefetchDistance(size, 0.5), "L/max(1, m) never exceeds L")

	// 1.5*L dominates until m > 6.
	assert.Equal(t, 30.0, Vertical.RecycleDistance(size, 3))
	assert.Equal(t, 55.0, Vertical.RecycleDistance(size, 11))
	assert.Equal(t, 220.0, Horizontal.RecycleDistance(size, 11))
}
