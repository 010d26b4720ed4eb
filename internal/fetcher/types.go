package fetcher

import (
	"encoding/json"
	"math"

	"github.com/Zachdehooge/fireguard-dashboard/internal/risk"
)

// Features is a flat feature vector accepted by POST /api/predict.
type Features interface {
	// Schema names the feature schema, for logging.
	Schema() string
}

// ManualInput is the form schema of the manual prediction tab. It is the
// only schema that carries a province name.
type ManualInput struct {
	Province     string  `json:"province"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	TmaxC        float64 `json:"Tmax_C"`
	RHmaxPct     float64 `json:"RHmax_pct"`
	WindMaxKmh   float64 `json:"Wind_max_kmh"`
	PrecipSumMM  float64 `json:"Precip_sum_mm"`
	PrecipSum7d  float64 `json:"Precip_sum_7d"`
	PrecipSum30d float64 `json:"Precip_sum_30d"`
	SolarRadJM2  float64 `json:"Solar_rad_J_m2"`
	BrightTI5    float64 `json:"bright_ti5"`
	FRP          float64 `json:"frp"`
}

func (ManualInput) Schema() string { return "manual" }

// NormalizedInput is the fully numeric schema the model was trained on.
type NormalizedInput struct {
	Track         float64 `json:"track"`
	BrightTI5     float64 `json:"bright_ti5"`
	SolarRadJM2   float64 `json:"Solar_rad_J_m2"`
	LatitudeX     float64 `json:"latitude_x"`
	FireRiskScore float64 `json:"fire_risk_score"`
	PrecipSum30d  float64 `json:"Precip_sum_30d"`
	GID1          float64 `json:"GID_1"`
	WindMaxKmh    float64 `json:"Wind_max_kmh"`
	DaynightN     float64 `json:"daynight_N"`
	LongitudeX    float64 `json:"longitude_x"`
	PrecipSum7d   float64 `json:"Precip_sum_7d"`
	AcqTime       float64 `json:"acq_time"`
	NoRain7d      float64 `json:"no_rain_7d"`
}

func (NormalizedInput) Schema() string { return "normalized" }

// PredictResult is the response of POST /api/predict.
type PredictResult struct {
	IsFire      bool    `json:"is_fire"`
	Probability float64 `json:"probability"`
	RiskLevel   string  `json:"risk_level"`
	Message     string  `json:"message,omitempty"`
}

// UnmarshalJSON accepts the probability under either "probability" or
// "fire_probability", and derives risk_level when the server omits it.
func (r *PredictResult) UnmarshalJSON(b []byte) error {
	var raw struct {
		IsFire          bool     `json:"is_fire"`
		Probability     *float64 `json:"probability"`
		FireProbability *float64 `json:"fire_probability"`
		RiskLevel       string   `json:"risk_level"`
		Message         string   `json:"message"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*r = PredictResult{
		IsFire:    raw.IsFire,
		RiskLevel: raw.RiskLevel,
		Message:   raw.Message,
	}
	switch {
	case raw.Probability != nil:
		r.Probability = *raw.Probability
	case raw.FireProbability != nil:
		r.Probability = *raw.FireProbability
	}
	if r.RiskLevel == "" {
		r.RiskLevel = risk.Classify(r.Probability).Label()
	}
	return nil
}

// Tier returns the qualitative tier of the result probability.
func (r PredictResult) Tier() risk.Tier {
	return risk.Classify(r.Probability)
}

// Defaults the hotspot service fills in when a satellite omits a column.
const (
	DefaultFRP       = 5.0
	DefaultBrightTI5 = 310.0
	DefaultScan      = 0.5
	DefaultTrack     = 0.5
	DefaultAcqTime   = 1200
	UnknownProvince  = "Unknown"
)

// Hotspot is a satellite-detected thermal anomaly.
type Hotspot struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Province  string  `json:"province"`
	Bright    float64 `json:"bright"`
	FRP       float64 `json:"frp"`
	BrightTI5 float64 `json:"bright_ti5"`
	AcqTime   int     `json:"acq_time"`
	AcqDate   string  `json:"acq_date"`
	Scan      float64 `json:"scan"`
	Track     float64 `json:"track"`
}

// UnmarshalJSON applies the service defaults to missing fields.
func (h *Hotspot) UnmarshalJSON(b []byte) error {
	type plain Hotspot
	var aux struct {
		plain
		AcqTime *float64 `json:"acq_time"`
	}
	aux.plain = plain{
		FRP:       DefaultFRP,
		BrightTI5: DefaultBrightTI5,
		Scan:      DefaultScan,
		Track:     DefaultTrack,
		AcqTime:   DefaultAcqTime,
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.AcqTime != nil {
		aux.plain.AcqTime = roundInt(*aux.AcqTime)
	}
	if aux.Province == "" {
		aux.Province = UnknownProvince
	}
	*h = Hotspot(aux.plain)
	return nil
}

// HotspotList is the response of GET /api/realtime/hotspots.
type HotspotList struct {
	Count int       `json:"count"`
	Data  []Hotspot `json:"data"`
}

func (l *HotspotList) UnmarshalJSON(b []byte) error {
	var aux struct {
		Count float64   `json:"count"`
		Data  []Hotspot `json:"data"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*l = HotspotList{Count: roundInt(aux.Count), Data: aux.Data}
	return nil
}

// roundInt converts a JSON number to int. Pandas-backed services often
// write integer columns as 930.0.
func roundInt(f float64) int {
	return int(math.Round(f))
}

// hotspotRequest is the body of POST /api/realtime/predict-hotspot.
type hotspotRequest struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	FRP       float64 `json:"frp"`
	BrightTI5 float64 `json:"bright_ti5"`
	AcqTime   int     `json:"acq_time"`
	Scan      float64 `json:"scan"`
	Track     float64 `json:"track"`
}

// clickRequest is the body of POST /api/realtime/predict-click.
type clickRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Weather is the daily weather snapshot the service attaches to realtime
// predictions.
type Weather struct {
	TmaxC        float64 `json:"Tmax_C"`
	RHmaxPct     float64 `json:"RHmax_pct"`
	PrecipSumMM  float64 `json:"Precip_sum_mm"`
	PrecipSum7d  float64 `json:"Precip_sum_7d"`
	PrecipSum30d float64 `json:"Precip_sum_30d"`
	WindMaxKmh   float64 `json:"Wind_max_kmh"`
	SolarRadJM2  float64 `json:"Solar_rad_J_m2"`
}

// HotspotData echoes the satellite measurements used for a hotspot
// prediction.
type HotspotData struct {
	FRP        float64 `json:"frp"`
	Brightness float64 `json:"brightness"`
	Time       int     `json:"time"`
}

func (d *HotspotData) UnmarshalJSON(b []byte) error {
	var aux struct {
		FRP        float64 `json:"frp"`
		Brightness float64 `json:"brightness"`
		Time       float64 `json:"time"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*d = HotspotData{FRP: aux.FRP, Brightness: aux.Brightness, Time: roundInt(aux.Time)}
	return nil
}

// ClickPrediction is the response of POST /api/realtime/predict-click.
type ClickPrediction struct {
	Province    string  `json:"province"`
	RiskLevel   string  `json:"risk_level"`
	Probability float64 `json:"probability"`
	IsFire      bool    `json:"is_fire"`
	Weather     Weather `json:"weather"`
}

// HotspotPrediction is the response of POST /api/realtime/predict-hotspot.
type HotspotPrediction struct {
	ClickPrediction
	HotspotData HotspotData `json:"hotspot_data"`
}

// Stats is the response of GET /api/stats. Monthly keys are month numbers
// ("1".."12") as strings.
type Stats struct {
	TotalFires int            `json:"total_fires"`
	Heatmap    map[string]int `json:"heatmap"`
	Monthly    map[string]int `json:"monthly"`
}

func (s *Stats) UnmarshalJSON(b []byte) error {
	var aux struct {
		TotalFires float64            `json:"total_fires"`
		Heatmap    map[string]float64 `json:"heatmap"`
		Monthly    map[string]float64 `json:"monthly"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*s = Stats{
		TotalFires: roundInt(aux.TotalFires),
		Heatmap:    roundCounts(aux.Heatmap),
		Monthly:    roundCounts(aux.Monthly),
	}
	return nil
}

func roundCounts(m map[string]float64) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = roundInt(v)
	}
	return out
}
