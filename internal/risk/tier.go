// Package risk maps fire probabilities returned by the prediction API to the
// qualitative tiers and visual states shown on the dashboard.
package risk

import "fmt"

// Tier is a qualitative risk bucket derived from a fire probability.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Tier thresholds. Both comparisons are strict.
const (
	HighThreshold   = 0.7
	MediumThreshold = 0.4
)

// Classify returns the tier for probability p.
func Classify(p float64) Tier {
	switch {
	case p > HighThreshold:
		return TierHigh
	case p > MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

var recommendations = map[Tier]string{
	TierHigh:   "⚠️ NGUY CƠ CAO: Tuyệt đối không đốt rừng, tăng cường tuần tra canh phòng. Chuẩn bị phương án chữa cháy khẩn cấp.",
	TierMedium: "⚡ RỦI RO TRUNG BÌNH: Hạn chế các hoạt động có nguy cơ gây cháy. Theo dõi chặt chẽ diễn biến thời tiết.",
	TierLow:    "✅ AN TOÀN: Điều kiện thời tiết thuận lợi. Duy trì các biện pháp phòng cháy thông thường.",
}

// Recommendation returns the advisory text shown under a prediction result.
func (t Tier) Recommendation() string {
	if r, ok := recommendations[t]; ok {
		return r
	}
	return recommendations[TierLow]
}

// Label returns the Vietnamese label of the tier.
func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "Nguy cơ cao"
	case TierMedium:
		return "Trung bình"
	default:
		return "Thấp"
	}
}

// Percent formats p as a percentage with one decimal, e.g. 0.82 -> "82.0%".
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// Visual states of a result card or popup.
const (
	StateDanger = "danger"
	StateSafe   = "safe"
)

// Colors used for the verdict text, bar and popup.
const (
	ColorDanger = "#dc2626"
	ColorSafe   = "#16a34a"
)

// VisualState returns the card state for a fire verdict.
func VisualState(isFire bool) string {
	if isFire {
		return StateDanger
	}
	return StateSafe
}

// StateColor returns the verdict colour for a fire verdict.
func StateColor(isFire bool) string {
	if isFire {
		return ColorDanger
	}
	return ColorSafe
}
