package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeightTable_SumsToOne(t *testing.T) {
	require.NoError(t, DefaultWeightTable().validate())
}

func TestWeightTable_For(t *testing.T) {
	table := DefaultWeightTable()
	tests := []struct {
		persona string
		want    Weights
	}{
		{"fresh graduate", table.Fresh},
		{"Fresh Graduate", table.Fresh},
		{"career switcher", table.Switch},
		{"retraining after a break", table.Retrain},
		{"experienced professional", table.Base},
		{"", table.Base},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.For(tt.persona), "persona %q", tt.persona)
	}
}

func TestExperienceAlignment(t *testing.T) {
	tests := []struct {
		title   string
		persona string
		want    float64
	}{
		{"Senior Data Scientist", "fresh graduate", 0.2},
		{"Lead Engineer", "fresh graduate", 0.2},
		{"Senior Data Scientist", "career switcher", 0.5},
		{"Senior Data Scientist", "experienced", 0.6},
		{"Junior Developer", "fresh graduate", 1.0},
		{"Associate Analyst", "career switcher", 0.8},
		{"Entry Level Tester", "retrain", 0.8},
		{"Data Scientist", "fresh graduate", 0.7},
		{"Data Scientist", "", 0.7},
	}
	for _, tt := range tests {
		got := ExperienceAlignment(tt.title, tt.persona)
		assert.InDelta(t, tt.want, got, 1e-9, "title=%q persona=%q", tt.title, tt.persona)
	}
}
