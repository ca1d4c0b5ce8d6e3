// Package explanation produces match explanations: a rule-based sentence that is
// always available, and an AI narrative fetched lazily per candidate.
package explanation

import (
	"fmt"
	"strings"

	"tutor-onboarding/internal/models"

	"golang.org/x/text/message"
)

// Score bands on the 0..100 scale.
const (
	BandVeryGood = 80.0
	BandGood     = 60.0
	BandSome     = 40.0

	// PartialThreshold is the lowest criterion percentage narrated as a partial match.
	PartialThreshold = 50.0
)

// Context is the candidate data a clause may name.
type Context struct {
	Subjects     []string
	GradeLevels  []string
	PriceMin     *int64
	PriceMax     *int64
	TeachingMode models.TeachingMode
}

// Synthesizer builds deterministic explanations. It holds no mutable state and
// is safe for concurrent use.
type Synthesizer struct {
	phrases phrasebook
	printer *message.Printer
}

// NewSynthesizer returns a synthesizer for locale, falling back to Vietnamese
// for unknown locales.
func NewSynthesizer(locale string) *Synthesizer {
	p := phrasesFor(locale)
	return &Synthesizer{
		phrases: p,
		printer: message.NewPrinter(p.tag),
	}
}

// Synthesize explains a normalized score using the per-criterion percentages.
// Identical inputs always yield the identical string.
func (s *Synthesizer) Synthesize(score float64, pct models.CriterionPercentages, c Context) string {
	base := s.base(score)

	var clauses []string
	add := func(percent float64, full, generic, partial, value string) {
		switch {
		case percent == 100:
			if value != "" {
				clauses = append(clauses, fmt.Sprintf(full, value))
			} else {
				clauses = append(clauses, generic)
			}
		case percent >= PartialThreshold && percent < 100:
			clauses = append(clauses, partial)
		}
	}

	p := s.phrases
	add(pct.SubjectMatch, p.subjectFull, p.subjectGeneric, p.subjectPartial, s.list(c.Subjects))
	add(pct.LevelMatch, p.levelFull, p.levelGeneric, p.levelPartial, s.list(c.GradeLevels))
	add(pct.PriceMatch, p.priceFull, p.priceGeneric, p.pricePartial, s.Price(c.PriceMin, c.PriceMax))
	add(pct.ScheduleMatch, p.modeFull, p.modeGeneric, p.modePartial, p.modes[c.TeachingMode])

	if len(clauses) == 0 {
		return base + "."
	}
	return base + ": " + strings.Join(clauses, "; ") + "."
}

func (s *Synthesizer) base(score float64) string {
	switch {
	case score >= BandVeryGood:
		return s.phrases.veryGood
	case score >= BandGood:
		return s.phrases.good
	case score >= BandSome:
		return s.phrases.some
	default:
		return s.phrases.weak
	}
}

func (s *Synthesizer) list(values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, s.phrases.listSep)
}

// Price formats a VND range with the locale's digit grouping.
func (s *Synthesizer) Price(min, max *int64) string {
	switch {
	case min != nil && max != nil && *min != *max:
		return s.printer.Sprintf("%d–%d %s", *min, *max, s.phrases.currency)
	case min != nil:
		return s.printer.Sprintf("%d %s", *min, s.phrases.currency)
	case max != nil:
		return s.printer.Sprintf("%d %s", *max, s.phrases.currency)
	}
	return ""
}
