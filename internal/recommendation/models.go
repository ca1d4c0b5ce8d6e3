package recommendation

import "tutor-onboarding/internal/models"

// Kind tells which raw shape a candidate came from.
type Kind string

const (
	KindTutor Kind = "tutor"
	KindPost  Kind = "post"
)

// Placeholders for optional display fields the upstream left empty.
const (
	PlaceholderAvatar    = "/images/default-avatar.png"
	PlaceholderTutorName = "Gia sư"
	PlaceholderPostTitle = "Bài đăng tìm gia sư"
	PlaceholderStudent   = "Học viên"
	PlaceholderHeadline  = "Chưa cập nhật giới thiệu"
	PlaceholderLocation  = "Chưa cập nhật địa điểm"

	// PlaceholderPrice is the price label of a candidate with no rate at all.
	PlaceholderPrice = "Thỏa thuận"
)

// MatchDetails are the full-match badges of a candidate.
type MatchDetails struct {
	SubjectMatch  bool    `json:"subjectMatch"`
	LevelMatch    bool    `json:"levelMatch"`
	PriceMatch    bool    `json:"priceMatch"`
	ScheduleMatch bool    `json:"scheduleMatch"`
	SemanticScore float64 `json:"semanticScore"`
}

// Display is the render-ready data of a candidate. Every field is populated
// except PriceMin and PriceMax, which stay nil without an upstream rate;
// PriceLabel always carries either the formatted range or PlaceholderPrice.
type Display struct {
	Title           string              `json:"title"`
	Subtitle        string              `json:"subtitle"`
	Avatar          string              `json:"avatar"`
	Subjects        []string            `json:"subjects"`
	GradeLevels     []string            `json:"gradeLevels"`
	PriceMin        *int64              `json:"priceMin"`
	PriceMax        *int64              `json:"priceMax"`
	PriceLabel      string              `json:"priceLabel"`
	TeachingMode    models.TeachingMode `json:"teachingMode"`
	Location        string              `json:"location"`
	Rating          float64             `json:"rating"`
	ExperienceYears int                 `json:"experienceYears"`
}

// RankedCandidate is the canonical form of a tutor or post recommendation.
// Values are recomputed on every fetch and never mutated in place.
type RankedCandidate struct {
	ID           string                      `json:"id"`
	Kind         Kind                        `json:"kind"`
	Score        float64                     `json:"score"` // 0..100
	MatchDetails MatchDetails                `json:"matchDetails"`
	Percentages  models.CriterionPercentages `json:"percentages"`
	Display      Display                     `json:"display"`
	Explanation  *string                     `json:"explanation"`
	IsTopMatch   bool                        `json:"isTopMatch"`
	Rank         int                         `json:"rank"`

	// UpstreamExplanation is the text the matching service attached, if any.
	UpstreamExplanation string `json:"-"`
}

// Params select and trim a recommendation list. A zero Limit takes the
// configured default. A zero MinScore does too unless MinScoreSet marks it as
// an explicit request for the unfiltered list.
type Params struct {
	SubjectOrPostID string
	MinScore        float64 // 0..1
	MinScoreSet     bool
	Limit           int
}

// Result is one ranked recommendation list.
type Result struct {
	Kind       Kind              `json:"kind"`
	Candidates []RankedCandidate `json:"candidates"`
	Total      int               `json:"total"`
	AIAnalysis *string           `json:"aiAnalysis,omitempty"`
	Failed     bool              `json:"failed"`
}
