package model

// Number of random perfumes returned when the ML service is unreachable.
const FallbackSampleSize = 6

// DefaultTopN is used when a request does not say how many results it wants.
const DefaultTopN = 6

// SimilarityRequest asks for perfumes similar to a named one.
type SimilarityRequest struct {
	PerfumeName string `json:"perfumeName"`
	Name        string `json:"name"`
	TopN        int    `json:"topN" binding:"omitempty,min=1,max=50"`
}

type PriceRange struct {
	Min float64 `json:"min" binding:"omitempty,gte=0"`
	Max float64 `json:"max" binding:"omitempty,gte=0"`
}

// PreferenceRequest is the questionnaire answer set.
type PreferenceRequest struct {
	Gender        string     `json:"gender" binding:"max=40"`
	Situation     string     `json:"situation" binding:"max=80"`
	Concentration string     `json:"concentration" binding:"max=40"`
	Size          string     `json:"size" binding:"max=40"`
	PriceRange    PriceRange `json:"priceRange"`
	Description   string     `json:"description" binding:"max=2000"`
	TopN          int        `json:"topN" binding:"omitempty,min=1,max=50"`
}

// Recommendation sources.
const (
	SourceML       = "ml"
	SourceFallback = "fallback"
)

type RecommendationResult struct {
	Success         bool      `json:"success"`
	Source          string    `json:"source"`
	Fallback        bool      `json:"fallback"`
	Count           int       `json:"count"`
	Query           string    `json:"query,omitempty"`
	Message         string    `json:"message,omitempty"`
	Recommendations []Perfume `json:"recommendations"`
}
