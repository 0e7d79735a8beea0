// Package analytics turns stored quiz attempts into practice sessions and
// learning statistics. Every function is a pure computation over its inputs.
package analytics

import "github.com/galamath/galamath/internal/models"

// Ingest keeps the attempts that can be placed in time. Attempts whose
// completion time could not be decoded are dropped and counted in skipped.
func Ingest(attempts []models.Attempt) (valid []models.Attempt, skipped int) {
	valid = make([]models.Attempt, 0, len(attempts))
	for _, a := range attempts {
		if a.CompletedAt.IsZero() {
			skipped++
			continue
		}
		valid = append(valid, a)
	}
	return valid, skipped
}
