package services

import (
	"strconv"
	"strings"

	"github.com/galamath/galamath/internal/models"
)

const defaultStudentGrade = 2

var rosterColors = []struct{ color, bg string }{
	{"#ec4899", "bg-pink-500"},
	{"#eab308", "bg-yellow-500"},
	{"#3b82f6", "bg-blue-500"},
	{"#22c55e", "bg-green-500"},
	{"#f97316", "bg-orange-500"},
	{"#8b5cf6", "bg-violet-500"},
}

// RosterService lists the learners configured for this household
type RosterService interface {
	List() []models.Student
}

type rosterService struct {
	students []models.Student
}

// NewRosterService parses a comma-separated list of names and an optional
// "Name:grade,..." list. Students without a grade default to grade 2.
func NewRosterService(users, grades string) RosterService {
	gradeOf := make(map[string]int)
	for _, entry := range strings.Split(grades, ",") {
		name, grade, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		if g, err := strconv.Atoi(strings.TrimSpace(grade)); err == nil && g > 0 {
			gradeOf[strings.TrimSpace(name)] = g
		}
	}

	students := []models.Student{}
	for _, raw := range strings.Split(users, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		grade, ok := gradeOf[name]
		if !ok {
			grade = defaultStudentGrade
		}
		c := rosterColors[len(students)%len(rosterColors)]
		students = append(students, models.Student{
			ID:      strings.ToUpper(string([]rune(name)[:1])),
			Name:    name,
			Grade:   grade,
			Color:   c.color,
			BgColor: c.bg,
		})
	}
	return &rosterService{students: students}
}

func (s *rosterService) List() []models.Student {
	out := make([]models.Student, len(s.students))
	copy(out, s.students)
	return out
}
