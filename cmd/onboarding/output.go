package main

import (
	"fmt"
	"io"
	"strings"

	"tutor-onboarding/internal/explanation"
	"tutor-onboarding/internal/recommendation"

	"github.com/fatih/color"
)

type printer struct {
	w io.Writer

	heading *color.Color
	top     *color.Color
	faint   *color.Color
	warn    *color.Color
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:       w,
		heading: color.New(color.FgCyan, color.Bold),
		top:     color.New(color.FgGreen, color.Bold),
		faint:   color.New(color.Faint),
		warn:    color.New(color.FgYellow),
	}
}

func (p *printer) printResumed(step, total int) {
	p.faint.Fprintf(p.w, "Resuming saved survey at step %d/%d\n", step+1, total)
}

func (p *printer) printStepRejected(step int, title, message string) {
	p.warn.Fprintf(p.w, "Step %d (%s): %s\n", step+1, title, message)
}

func (p *printer) printResult(r *recommendation.Result) {
	label := "Tutors"
	if r.Kind == recommendation.KindPost {
		label = "Student posts"
	}
	p.heading.Fprintf(p.w, "\n=== %s (%d of %d) ===\n", label, len(r.Candidates), r.Total)

	if r.AIAnalysis != nil && strings.TrimSpace(*r.AIAnalysis) != "" {
		fmt.Fprintf(p.w, "%s\n", *r.AIAnalysis)
	}
	if r.Failed {
		p.warn.Fprintf(p.w, "Recommendations are unavailable right now.\n")
		return
	}
	if len(r.Candidates) == 0 {
		fmt.Fprintf(p.w, "No matching candidates.\n")
		return
	}

	for _, c := range r.Candidates {
		fmt.Fprintln(p.w)
		fmt.Fprintf(p.w, "#%d %s  %.0f%%", c.Rank, c.Display.Title, c.Score)
		if c.IsTopMatch {
			p.top.Fprintf(p.w, "  ★ top match")
		}
		fmt.Fprintf(p.w, "  [%s]\n", c.ID)
		p.faint.Fprintf(p.w, "   %s\n", c.Display.Subtitle)
		if details := p.details(c); details != "" {
			fmt.Fprintf(p.w, "   %s\n", details)
		}
		if c.Explanation != nil {
			fmt.Fprintf(p.w, "   %s\n", *c.Explanation)
		}
	}
}

func (p *printer) details(c recommendation.RankedCandidate) string {
	var parts []string
	if len(c.Display.Subjects) > 0 {
		parts = append(parts, strings.Join(c.Display.Subjects, ", "))
	}
	if len(c.Display.GradeLevels) > 0 {
		parts = append(parts, strings.Join(c.Display.GradeLevels, ", "))
	}
	parts = append(parts, c.Display.PriceLabel)
	if c.Display.TeachingMode != "" {
		parts = append(parts, string(c.Display.TeachingMode))
	}
	return strings.Join(parts, " · ")
}

func (p *printer) printExplanation(c recommendation.RankedCandidate, st explanation.State) {
	p.heading.Fprintf(p.w, "\n=== Why %s ===\n", c.Display.Title)
	switch {
	case st.Value != nil:
		fmt.Fprintf(p.w, "%s\n", *st.Value)
	case st.Status == explanation.StatusError:
		p.warn.Fprintf(p.w, "AI explanation unavailable.\n")
		if c.Explanation != nil {
			fmt.Fprintf(p.w, "%s\n", *c.Explanation)
		}
	case c.Explanation != nil:
		fmt.Fprintf(p.w, "%s\n", *c.Explanation)
	}
}
