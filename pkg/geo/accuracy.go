package geo

// AccuracyQuality classifies a GPS accuracy reading for display.
type AccuracyQuality struct {
	Quality     string `json:"quality"`
	Description string `json:"description"`
}

// ClassifyAccuracy maps a reported accuracy radius in meters to a quality
// bucket. A nil reading means the device did not report accuracy.
func ClassifyAccuracy(meters *float64) AccuracyQuality {
	if meters == nil {
		return AccuracyQuality{Quality: "unknown", Description: "Unknown"}
	}

	switch {
	case *meters <= 10:
		return AccuracyQuality{Quality: "excellent", Description: "Excellent GPS signal"}
	case *meters <= 50:
		return AccuracyQuality{Quality: "good", Description: "Good GPS signal"}
	case *meters <= 100:
		return AccuracyQuality{Quality: "fair", Description: "Fair GPS signal"}
	default:
		return AccuracyQuality{Quality: "poor", Description: "Poor GPS signal"}
	}
}
