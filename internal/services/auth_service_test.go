package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/galamath/galamath/internal/services"
)

func TestAuthService_Check(t *testing.T) {
	svc := services.NewAuthService("2468")
	assert.True(t, svc.Check("2468"))
	assert.False(t, svc.Check("1234"))
	assert.False(t, svc.Check(""))
	assert.False(t, svc.Check("24680"))

	assert.True(t, services.NewAuthService("").Check(services.DefaultPasscode))
}

func TestRosterService_List(t *testing.T) {
	svc := services.NewRosterService("Zoe, Iris,,rose", "Zoe:5,Iris:x,bogus")
	got := svc.List()

	assert.Len(t, got, 3)
	assert.Equal(t, "Z", got[0].ID)
	assert.Equal(t, 5, got[0].Grade)
	assert.Equal(t, "#ec4899", got[0].Color)
	assert.Equal(t, 2, got[1].Grade, "unparseable grade falls back")
	assert.Equal(t, "R", got[2].ID)
	assert.Equal(t, "bg-blue-500", got[2].BgColor)

	assert.Empty(t, services.NewRosterService("", "").List())
}
