package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    float64
		want Tier
	}{
		{name: "zero is low", p: 0, want: TierLow},
		{name: "medium threshold is still low", p: 0.4, want: TierLow},
		{name: "just above medium threshold", p: 0.4000001, want: TierMedium},
		{name: "middle of medium", p: 0.55, want: TierMedium},
		{name: "high threshold is still medium", p: 0.7, want: TierMedium},
		{name: "just above high threshold", p: 0.7000001, want: TierHigh},
		{name: "certain fire", p: 1, want: TierHigh},
		{name: "negative clamps to low", p: -0.2, want: TierLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.p))
		})
	}
}

func TestClassifyProperty(t *testing.T) {
	t.Parallel()

	for i := 0; i <= 1000; i++ {
		p := float64(i) / 1000
		got := Classify(p)
		assert.Equal(t, p > 0.7, got == TierHigh, "p=%v", p)
		assert.Equal(t, p > 0.4 && p <= 0.7, got == TierMedium, "p=%v", p)
		assert.Equal(t, p <= 0.4, got == TierLow, "p=%v", p)
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "82.0%", Percent(0.82))
	assert.Equal(t, "0.0%", Percent(0))
	assert.Equal(t, "100.0%", Percent(1))
	assert.Equal(t, "12.3%", Percent(0.1234))
}

func TestVisualState(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StateDanger, VisualState(true))
	assert.Equal(t, StateSafe, VisualState(false))
	assert.Equal(t, ColorDanger, StateColor(true))
	assert.Equal(t, ColorSafe, StateColor(false))
}

func TestRecommendation(t *testing.T) {
	t.Parallel()

	assert.Contains(t, TierHigh.Recommendation(), "NGUY CƠ CAO")
	assert.Contains(t, TierMedium.Recommendation(), "TRUNG BÌNH")
	assert.Contains(t, TierLow.Recommendation(), "AN TOÀN")
	assert.Equal(t, TierLow.Recommendation(), Tier("unknown").Recommendation())
}
