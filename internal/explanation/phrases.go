package explanation

import (
	"tutor-onboarding/internal/models"

	"golang.org/x/text/language"
)

const (
	LocaleVI = "vi"
	LocaleEN = "en"
)

// phrasebook holds the wording for one locale. Clause templates take the
// candidate's own values through a single %s verb.
type phrasebook struct {
	tag      language.Tag
	currency string

	veryGood string
	good     string
	some     string
	weak     string

	subjectFull    string
	subjectGeneric string
	subjectPartial string

	levelFull    string
	levelGeneric string
	levelPartial string

	priceFull    string
	priceGeneric string
	pricePartial string

	modeFull    string
	modeGeneric string
	modePartial string

	listSep string
	modes   map[models.TeachingMode]string
}

var vietnamese = phrasebook{
	tag:      language.Vietnamese,
	currency: "VNĐ",

	veryGood: "Rất phù hợp với yêu cầu của bạn",
	good:     "Khá phù hợp với yêu cầu của bạn",
	some:     "Có một số điểm phù hợp với yêu cầu của bạn",
	weak:     "Có thể phù hợp trong một số điều kiện",

	subjectFull:    "dạy đúng môn %s",
	subjectGeneric: "dạy đúng môn bạn cần",
	subjectPartial: "phù hợp một phần về môn học",

	levelFull:    "phù hợp trình độ %s",
	levelGeneric: "phù hợp trình độ của bạn",
	levelPartial: "phù hợp một phần về trình độ",

	priceFull:    "học phí %s nằm trong ngân sách",
	priceGeneric: "học phí nằm trong ngân sách",
	pricePartial: "học phí gần với ngân sách",

	modeFull:    "hình thức học %s",
	modeGeneric: "hình thức học phù hợp",
	modePartial: "hình thức học phù hợp một phần",

	listSep: ", ",
	modes: map[models.TeachingMode]string{
		models.TeachingModeOnline:  "trực tuyến",
		models.TeachingModeOffline: "trực tiếp",
		models.TeachingModeBoth:    "trực tuyến hoặc trực tiếp",
	},
}

var english = phrasebook{
	tag:      language.English,
	currency: "VND",

	veryGood: "Very good match for your needs",
	good:     "Good match for your needs",
	some:     "Some relevant matches for your needs",
	weak:     "May match under some conditions",

	subjectFull:    "teaches %s",
	subjectGeneric: "teaches the subjects you need",
	subjectPartial: "partially matches your subjects",

	levelFull:    "fits grade level %s",
	levelGeneric: "fits your grade level",
	levelPartial: "partially matches your grade level",

	priceFull:    "fee of %s is within budget",
	priceGeneric: "fee is within budget",
	pricePartial: "fee is close to your budget",

	modeFull:    "teaches %s",
	modeGeneric: "teaching mode fits",
	modePartial: "teaching mode partially matches",

	listSep: ", ",
	modes: map[models.TeachingMode]string{
		models.TeachingModeOnline:  "online",
		models.TeachingModeOffline: "in person",
		models.TeachingModeBoth:    "online or in person",
	},
}

func phrasesFor(locale string) phrasebook {
	if locale == LocaleEN {
		return english
	}
	return vietnamese
}
