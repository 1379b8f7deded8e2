package person

import (
	"time"

	"github.com/google/uuid"
)

// AdultAge is the first age at which a person may record income.
const AdultAge = 18

// Person is someone who owns transactions. Age is always derived from BirthDate.
type Person struct {
	ID        uuid.UUID
	Name      string
	BirthDate time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// AgeOn returns the person's age in completed years on the given day.
func (p *Person) AgeOn(today time.Time) int {
	return Age(p.BirthDate, today)
}

// IsMinorOn reports whether the person is younger than AdultAge on the given day.
func (p *Person) IsMinorOn(today time.Time) bool {
	return p.AgeOn(today) < AdultAge
}

// Age returns the number of completed years between birthDate and today.
//
// A birthday counts as reached only once today's month/day is on or after the
// birth month/day, so someone born on Dec 31 turns a year older on Dec 31 and
// not on Jan 1. A Feb 29 birthday is reached on Mar 1 in non-leap years.
// A birthDate after today yields a negative age.
func Age(birthDate, today time.Time) int {
	years := today.Year() - birthDate.Year()

	bm, bd := birthDate.Month(), birthDate.Day()
	tm, td := today.Month(), today.Day()

	if bm > tm || (bm == tm && bd > td) {
		years--
	}

	return years
}
