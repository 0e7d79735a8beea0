package analytics

import (
	"sort"

	"github.com/galamath/galamath/internal/models"
)

// Session labels.
const (
	ReasonPerfect       = "Perfect!"
	ReasonGoodStart     = "Good start"
	ReasonNeedsPractice = "Needs practice"
	ReasonRushing       = "Rushing"
	ReasonGaveUp        = "Gave up"
	ReasonGettingWorse  = "Getting worse"
	ReasonMastered      = "Mastered!"
	ReasonGreatProgress = "Great progress"
	ReasonImproving     = "Improving"
	ReasonStruggling    = "Struggling"
)

const (
	rushingSeconds     = 3.0
	gaveUpSeconds      = 5.0
	gaveUpDrop         = -10.0
	greatProgressGain  = 20.0
	goodStartThreshold = 80.0
	worseAfterRetries  = 2
)

// Seriousness classifies every explicit session by effort and progress.
// Sessions without a stored round 1 cannot be judged and are left out.
func Seriousness(sessions map[string]Session) []models.SessionAnalysis {
	out := []models.SessionAnalysis{}
	for id, s := range sessions {
		if s.Inferred || len(s.Rounds) == 0 {
			continue
		}
		if a, ok := analyzeSession(id, s.Sorted()); ok {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.UserName != b.UserName || a.ThemeName != b.ThemeName || a.Level != b.Level {
			return lessUserThemeLevel(a.UserName, a.ThemeName, a.Level, b.UserName, b.ThemeName, b.Level)
		}
		if !a.CompletedAt.Equal(b.CompletedAt) {
			return a.CompletedAt.Before(b.CompletedAt)
		}
		return a.SessionID < b.SessionID
	})
	return out
}

func analyzeSession(id string, s Session) (models.SessionAnalysis, bool) {
	var first *Round
	var laterTimes []float64
	total := 0
	for i := range s.Rounds {
		r := &s.Rounds[i]
		if r.Number == 1 && first == nil {
			first = r
		}
		if r.Number > 1 {
			laterTimes = append(laterTimes, r.AvgTimePerQuestion)
		}
		total += r.TotalTimeSeconds
	}
	if first == nil {
		return models.SessionAnalysis{}, false
	}

	final := s.Rounds[len(s.Rounds)-1]
	firstPct := Percent1(first.Score, first.TotalQuestions)
	finalPct := Percent1(final.Score, final.TotalQuestions)
	improvement := Round1(finalPct - firstPct)
	avgLater := mean(laterTimes)

	serious := true
	var reason string
	if len(s.Rounds) == 1 {
		switch {
		case firstPct == 100:
			reason = ReasonPerfect
		case firstPct >= goodStartThreshold:
			reason = ReasonGoodStart
		default:
			reason = ReasonNeedsPractice
			serious = first.AvgTimePerQuestion >= rushingSeconds
		}
	} else {
		switch {
		case avgLater < rushingSeconds:
			serious, reason = false, ReasonRushing
		case improvement < gaveUpDrop && avgLater < gaveUpSeconds:
			serious, reason = false, ReasonGaveUp
		case finalPct < firstPct && len(laterTimes) > worseAfterRetries:
			serious, reason = false, ReasonGettingWorse
		case finalPct == 100:
			reason = ReasonMastered
		case improvement > greatProgressGain:
			reason = ReasonGreatProgress
		case improvement > 0:
			reason = ReasonImproving
		default:
			reason = ReasonStruggling
		}
	}

	return models.SessionAnalysis{
		UserName:           s.UserName,
		ThemeName:          s.ThemeName,
		Level:              s.Level,
		SessionID:          id,
		RoundsCount:        len(s.Rounds),
		Round1Percentage:   firstPct,
		FinalPercentage:    finalPct,
		Improvement:        improvement,
		AvgTimeLaterRounds: Round1(avgLater),
		AvgTimeRound1:      Round1(first.AvgTimePerQuestion),
		TotalTimeSeconds:   total,
		Serious:            serious,
		Reason:             reason,
		CompletedAt:        s.CompletedAt,
	}, true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
