package models

// ExplanationRequest asks the AI service to explain why target matches source.
type ExplanationRequest struct {
	SourceID string  `json:"sourceId"`
	TargetID string  `json:"targetId"`
	Score    float64 `json:"score"`
}

// ExplanationResponse carries the generated narrative.
type ExplanationResponse struct {
	Explanation string `json:"explanation"`
}
