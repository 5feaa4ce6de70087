package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosest(t *testing.T) {
	props := []string{"Street", "City", "SetCity", "Address", "SetAddress"}

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"Adress", "Address", true},
		{"GetCity", "City", true},
		{"city", "City", true},
		{"Zip", "", false},
		{"Street", "", false}, // the name itself is not a suggestion
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.name, props)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRank(t *testing.T) {
	ranked := Rank("Adress", []string{"City", "Adresses", "Address"})
	require.Len(t, ranked, 2)

	assert.Equal(t, "Address", ranked[0].Name)
	assert.Equal(t, "Adresses", ranked[1].Name)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRank_TiesUseNaturalOrder(t *testing.T) {
	ranked := Rank("Itemab", []string{"Item10", "Item9"})
	require.Len(t, ranked, 2)

	assert.Equal(t, "Item9", ranked[0].Name)
	assert.Equal(t, "Item10", ranked[1].Name)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank("City", nil))
}
