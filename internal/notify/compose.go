package notify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/galamath/galamath/internal/models"
)

const (
	appName   = "Galamath"
	rule      = "================================"
	footer    = "---\nGalamath Quiz App"
	skipLabel = "Skipped"
)

// Message is a plain-text email.
type Message struct {
	Subject string
	Text    string
}

// ComposeResult builds the notification for a submitted round. A perfect
// score gets a congratulation message; anything else lists the mistakes.
func ComposeResult(r models.ResultSubmission) Message {
	if r.TotalQuestions > 0 && r.Score == r.TotalQuestions {
		return composePerfect(r)
	}
	return composeAttempt(r)
}

func composeAttempt(r models.ResultSubmission) Message {
	level, mode := levelLabel(r.Level), modeLabel(r.IsTestMode)
	rate := fixed(ratio(r.Score, r.TotalQuestions), 1)

	var b strings.Builder
	fmt.Fprintf(&b, "Quiz Results for %s\n%s\n\n", r.UserName, rule)
	fmt.Fprintf(&b, "Mode: %s\n", mode)
	fmt.Fprintf(&b, "Level: %s\n", level)
	fmt.Fprintf(&b, "Theme: %s\n", r.ThemeName)
	fmt.Fprintf(&b, "Score: %d/%d (%s%%)\n", r.Score, r.TotalQuestions, rate)
	fmt.Fprintf(&b, "Round: %d\n", roundOf(r))
	writeTiming(&b, r)
	b.WriteString(breakdownSection(r))
	fmt.Fprintf(&b, "\nMistakes (%d):\n\n", len(r.Mistakes))
	b.WriteString(mistakeList(r.Mistakes))
	b.WriteString("\n\n" + footer)

	return Message{
		Subject: fmt.Sprintf("[%s] %s completed %s (%s %s) - %s%%", appName, r.UserName, r.ThemeName, level, mode, rate),
		Text:    strings.TrimSpace(b.String()),
	}
}

func composePerfect(r models.ResultSubmission) Message {
	level, mode := levelLabel(r.Level), modeLabel(r.IsTestMode)
	round := roundOf(r)

	var b strings.Builder
	fmt.Fprintf(&b, "PERFECT SCORE!\n%s\n\n", rule)
	fmt.Fprintf(&b, "%s has successfully completed %s with a perfect score!\n\n", r.UserName, r.ThemeName)
	fmt.Fprintf(&b, "Mode: %s\n", mode)
	fmt.Fprintf(&b, "Level: %s\n", level)
	fmt.Fprintf(&b, "Score: %d/%d (100%%)\n", r.Score, r.TotalQuestions)
	fmt.Fprintf(&b, "Rounds needed: %d\n", round)
	writeTiming(&b, r)
	b.WriteString(breakdownSection(r))
	if round == 1 {
		b.WriteString("\nAmazing! First try success!")
	} else {
		fmt.Fprintf(&b, "\nCompleted after %d rounds of practice.", round)
	}
	b.WriteString("\n\n" + footer)

	return Message{
		Subject: fmt.Sprintf("[%s] %s achieved PERFECT SCORE on %s (%s %s)!", appName, r.UserName, r.ThemeName, level, mode),
		Text:    strings.TrimSpace(b.String()),
	}
}

func writeTiming(b *strings.Builder, r models.ResultSubmission) {
	fmt.Fprintf(b, "Total Time: %dm %ds\n", r.TotalTimeSeconds/60, r.TotalTimeSeconds%60)
	fmt.Fprintf(b, "Average Time per Question: %ss\n", fixed(decimal.NewFromFloat(r.AvgTimePerQuestion), 1))
}

// breakdownSection is empty outside test mode.
func breakdownSection(r models.ResultSubmission) string {
	if !r.IsTestMode || len(r.ThemeBreakdown) == 0 {
		return ""
	}
	themes := make([]models.ThemeScore, len(r.ThemeBreakdown))
	copy(themes, r.ThemeBreakdown)
	sort.SliceStable(themes, func(i, j int) bool {
		return ratio(themes[i].Correct, themes[i].Total).GreaterThan(ratio(themes[j].Correct, themes[j].Total))
	})

	lines := make([]string, len(themes))
	for i, t := range themes {
		lines[i] = fmt.Sprintf("• %s: %d/%d (%s%%)", t.Theme, t.Correct, t.Total, fixed(ratio(t.Correct, t.Total), 0))
	}
	return "\nPerformance by Theme:\n" + strings.Join(lines, "\n") + "\n"
}

func mistakeList(mistakes []models.MistakeSummary) string {
	items := make([]string, len(mistakes))
	for i, m := range mistakes {
		answer := skipLabel
		if m.UserAnswer != nil && *m.UserAnswer != "" {
			answer = *m.UserAnswer
		}
		items[i] = fmt.Sprintf("• Q%d: %s\n  Answer: %s\n  Correct: %s\n  Hint: %s",
			m.QuestionNumber, m.Question, answer, m.CorrectAnswer, m.Hint)
	}
	return strings.Join(items, "\n\n")
}

// ratio is num/den as a percentage; zero when den is not positive.
func ratio(num, den int) decimal.Decimal {
	if den <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(num)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(den)))
}

func fixed(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

func levelLabel(l models.Level) string {
	if l == "" {
		return "Unknown"
	}
	s := string(l)
	return strings.ToUpper(s[:1]) + s[1:]
}

func modeLabel(test bool) string {
	if test {
		return "Test"
	}
	return "Training"
}

func roundOf(r models.ResultSubmission) int {
	if r.Round <= 0 {
		return 1
	}
	return r.Round
}
