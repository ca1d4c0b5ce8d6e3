package recommendation

import (
	"math"
	"testing"

	"tutor-onboarding/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		raw      float64
		expected float64
	}{
		{0, 0},
		{0.5, 50},
		{0.92, 92},
		{1, 100},
		{1.5, 1.5},
		{40, 40},
		{100, 100},
		{130, 100},
		{-0.3, 0},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, NormalizeScore(tt.raw), 1e-9, "raw %v", tt.raw)
	}

	assert.Equal(t, NormalizeScore(92), NormalizeScore(0.92), "both scales tie exactly")
}

func TestNormalizeTutor_FullRecord(t *testing.T) {
	priceMin, priceMax := int64(150000), int64(250000)
	rating, years := 4.8, 6
	raw := models.TutorRecommendation{
		TutorID: "tutor-1",
		Tutor: &models.TutorProfile{
			FullName:        "Nguyễn Văn An",
			Avatar:          "https://cdn.example.com/a.png",
			Headline:        "Giáo viên Toán THPT",
			Subjects:        []string{"Toán học"},
			GradeLevels:     []string{"Lớp 10", "Lớp 11"},
			PriceMin:        &priceMin,
			PriceMax:        &priceMax,
			TeachingMode:    models.TeachingModeOnline,
			Rating:          &rating,
			ExperienceYears: &years,
		},
		MatchScore: 0.87,
		MatchDetails: models.CriterionPercentages{
			SubjectMatch: 100, LevelMatch: 100, PriceMatch: 80, ScheduleMatch: 0, SemanticScore: 0.73,
		},
		Explanation: " upstream text ",
	}

	c := NormalizeTutor(raw)

	assert.Equal(t, "tutor-1", c.ID)
	assert.Equal(t, KindTutor, c.Kind)
	assert.InDelta(t, 87, c.Score, 1e-9)
	assert.Equal(t, MatchDetails{SubjectMatch: true, LevelMatch: true, SemanticScore: 0.73}, c.MatchDetails)
	assert.Equal(t, 80.0, c.Percentages.PriceMatch, "raw percentages kept for narration")
	assert.Equal(t, "Nguyễn Văn An", c.Display.Title)
	assert.Equal(t, int64(150000), *c.Display.PriceMin)
	assert.Equal(t, 4.8, c.Display.Rating)
	assert.Equal(t, 6, c.Display.ExperienceYears)
	assert.Equal(t, "upstream text", c.UpstreamExplanation)
	assert.Nil(t, c.Explanation)
	assert.False(t, c.IsTopMatch)
	assert.Zero(t, c.Rank)

	assert.Equal(t, "150.000–250.000 VNĐ", c.Display.PriceLabel)

	*raw.Tutor.PriceMin = 1
	assert.Equal(t, int64(150000), *c.Display.PriceMin, "no aliasing of upstream pointers")
}

func TestNormalizeTutor_Placeholders(t *testing.T) {
	c := NormalizeTutor(models.TutorRecommendation{TutorID: "tutor-2", MatchScore: 55})

	assert.Equal(t, 55.0, c.Score)
	assert.Equal(t, PlaceholderTutorName, c.Display.Title)
	assert.Equal(t, PlaceholderHeadline, c.Display.Subtitle)
	assert.Equal(t, PlaceholderAvatar, c.Display.Avatar)
	assert.Equal(t, PlaceholderLocation, c.Display.Location)
	assert.Equal(t, models.TeachingModeBoth, c.Display.TeachingMode)
	assert.NotNil(t, c.Display.Subjects)
	assert.NotNil(t, c.Display.GradeLevels)
	assert.Nil(t, c.Display.PriceMin)
	assert.Nil(t, c.Display.PriceMax)
	assert.Equal(t, PlaceholderPrice, c.Display.PriceLabel)
	assert.Equal(t, MatchDetails{}, c.MatchDetails)
}

func TestNormalizePost(t *testing.T) {
	rateMin := int64(200000)
	raw := models.PostRecommendation{
		PostID: "post-7",
		Post: &models.StudentPost{
			Title:        "Tìm gia sư Hóa lớp 12",
			Subjects:     []string{"Hóa học", " "},
			GradeLevel:   "Lớp 12",
			HourlyRate:   &models.HourlyRate{Min: &rateMin},
			TeachingMode: "HYBRID",
		},
		Compatibility: 64,
		MatchDetails: models.CriterionPercentages{
			SubjectMatch: 100, LevelMatch: 99.9, ScheduleMatch: 100, SemanticScore: 1.4,
		},
	}

	c := NormalizePost(raw)

	assert.Equal(t, KindPost, c.Kind)
	assert.Equal(t, 64.0, c.Score)
	assert.True(t, c.MatchDetails.SubjectMatch)
	assert.False(t, c.MatchDetails.LevelMatch, "only an exact full match earns the badge")
	assert.True(t, c.MatchDetails.ScheduleMatch)
	assert.Equal(t, 1.0, c.MatchDetails.SemanticScore)
	assert.Equal(t, "Tìm gia sư Hóa lớp 12", c.Display.Title)
	assert.Equal(t, PlaceholderStudent, c.Display.Subtitle)
	assert.Equal(t, []string{"Hóa học"}, c.Display.Subjects)
	assert.Equal(t, []string{"Lớp 12"}, c.Display.GradeLevels)
	assert.Equal(t, int64(200000), *c.Display.PriceMin)
	assert.Nil(t, c.Display.PriceMax)
	assert.Equal(t, "200.000 VNĐ", c.Display.PriceLabel)
	assert.Equal(t, models.TeachingModeBoth, c.Display.TeachingMode)
	assert.Equal(t, PlaceholderLocation, c.Display.Location)

	bare := NormalizePost(models.PostRecommendation{PostID: "post-8", Post: &models.StudentPost{HourlyRate: &models.HourlyRate{}}})
	assert.Equal(t, PlaceholderPrice, bare.Display.PriceLabel, "an empty rate still gets a label")
}

func TestNormalizeLists(t *testing.T) {
	assert.NotNil(t, NormalizeTutors(nil))
	assert.Len(t, NormalizePosts([]models.PostRecommendation{{PostID: "a"}, {PostID: "b"}}), 2)
}
