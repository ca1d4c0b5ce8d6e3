package recommendation

import (
	"math"
	"strings"

	"tutor-onboarding/internal/explanation"
	"tutor-onboarding/internal/models"
)

// prices formats display price labels; placeholders are Vietnamese as well.
var prices = explanation.NewSynthesizer(explanation.LocaleVI)

// NormalizeScore maps an upstream score to 0..100. Values up to 1 are read as
// fractions, anything above 1 as a percentage already. A true score of 1% or
// less is therefore indistinguishable from a fraction.
func NormalizeScore(raw float64) float64 {
	if math.IsNaN(raw) || raw <= 0 {
		return 0
	}
	if raw <= 1 {
		// Rounded to hundredths so 0.92 and 92 compare equal.
		raw = math.Round(raw*10000) / 100
	}
	return math.Min(raw, 100)
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 100)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}

func normalizePercentages(p models.CriterionPercentages) models.CriterionPercentages {
	return models.CriterionPercentages{
		SubjectMatch:  clampPercent(p.SubjectMatch),
		LevelMatch:    clampPercent(p.LevelMatch),
		PriceMatch:    clampPercent(p.PriceMatch),
		ScheduleMatch: clampPercent(p.ScheduleMatch),
		SemanticScore: clampUnit(p.SemanticScore),
	}
}

// matchDetails sets a badge only for an exact full match.
func matchDetails(p models.CriterionPercentages) MatchDetails {
	return MatchDetails{
		SubjectMatch:  p.SubjectMatch == 100,
		LevelMatch:    p.LevelMatch == 100,
		PriceMatch:    p.PriceMatch == 100,
		ScheduleMatch: p.ScheduleMatch == 100,
		SemanticScore: p.SemanticScore,
	}
}

// NormalizeTutor converts a tutor-shaped recommendation.
func NormalizeTutor(r models.TutorRecommendation) RankedCandidate {
	t := models.TutorProfile{}
	if r.Tutor != nil {
		t = *r.Tutor
	}
	pct := normalizePercentages(r.MatchDetails)

	d := Display{
		Title:        orDefault(t.FullName, PlaceholderTutorName),
		Subtitle:     orDefault(t.Headline, PlaceholderHeadline),
		Avatar:       orDefault(t.Avatar, PlaceholderAvatar),
		Subjects:     nonEmpty(t.Subjects),
		GradeLevels:  nonEmpty(t.GradeLevels),
		PriceMin:     copyInt64(t.PriceMin),
		PriceMax:     copyInt64(t.PriceMax),
		TeachingMode: modeOrDefault(t.TeachingMode),
		Location:     PlaceholderLocation,
	}
	d.PriceLabel = priceLabel(d.PriceMin, d.PriceMax)
	if t.Rating != nil {
		d.Rating = *t.Rating
	}
	if t.ExperienceYears != nil {
		d.ExperienceYears = *t.ExperienceYears
	}

	return RankedCandidate{
		ID:                  r.TutorID,
		Kind:                KindTutor,
		Score:               NormalizeScore(r.MatchScore),
		MatchDetails:        matchDetails(pct),
		Percentages:         pct,
		Display:             d,
		UpstreamExplanation: strings.TrimSpace(r.Explanation),
	}
}

// NormalizePost converts a student-post-shaped recommendation.
func NormalizePost(r models.PostRecommendation) RankedCandidate {
	p := models.StudentPost{}
	if r.Post != nil {
		p = *r.Post
	}
	pct := normalizePercentages(r.MatchDetails)

	d := Display{
		Title:        orDefault(p.Title, PlaceholderPostTitle),
		Subtitle:     orDefault(p.StudentName, PlaceholderStudent),
		Avatar:       orDefault(p.Avatar, PlaceholderAvatar),
		Subjects:     nonEmpty(p.Subjects),
		GradeLevels:  nonEmpty(nil),
		TeachingMode: modeOrDefault(p.TeachingMode),
		Location:     orDefault(p.Location, PlaceholderLocation),
	}
	if g := strings.TrimSpace(p.GradeLevel); g != "" {
		d.GradeLevels = []string{g}
	}
	if p.HourlyRate != nil {
		d.PriceMin = copyInt64(p.HourlyRate.Min)
		d.PriceMax = copyInt64(p.HourlyRate.Max)
	}
	d.PriceLabel = priceLabel(d.PriceMin, d.PriceMax)

	return RankedCandidate{
		ID:                  r.PostID,
		Kind:                KindPost,
		Score:               NormalizeScore(r.Compatibility),
		MatchDetails:        matchDetails(pct),
		Percentages:         pct,
		Display:             d,
		UpstreamExplanation: strings.TrimSpace(r.Explanation),
	}
}

// NormalizeTutors converts a tutor page. The result is never nil.
func NormalizeTutors(items []models.TutorRecommendation) []RankedCandidate {
	out := make([]RankedCandidate, 0, len(items))
	for _, it := range items {
		out = append(out, NormalizeTutor(it))
	}
	return out
}

// NormalizePosts converts a post page. The result is never nil.
func NormalizePosts(items []models.PostRecommendation) []RankedCandidate {
	out := make([]RankedCandidate, 0, len(items))
	for _, it := range items {
		out = append(out, NormalizePost(it))
	}
	return out
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func modeOrDefault(m models.TeachingMode) models.TeachingMode {
	if m.Valid() {
		return m
	}
	return models.TeachingModeBoth
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func priceLabel(min, max *int64) string {
	if label := prices.Price(min, max); label != "" {
		return label
	}
	return PlaceholderPrice
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
