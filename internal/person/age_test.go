package person_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/person"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	tests := []struct {
		name      string
		birthDate time.Time
		today     time.Time
		want      int
	}{
		{
			name:      "BirthdayAlreadyPassed",
			birthDate: day(1990, time.March, 10),
			today:     day(2026, time.October, 19),
			want:      36,
		},
		{
			name:      "BirthdayLaterThisYear",
			birthDate: day(1990, time.December, 31),
			today:     day(2026, time.October, 19),
			want:      35,
		},
		{
			name:      "Dec31NotCountedOnJan1",
			birthDate: day(2005, time.December, 31),
			today:     day(2025, time.January, 1),
			want:      19,
		},
		{
			name:      "Dec31CountedOnDec31",
			birthDate: day(2005, time.December, 31),
			today:     day(2025, time.December, 31),
			want:      20,
		},
		{
			name:      "ExactlyEighteen",
			birthDate: day(2008, time.October, 19),
			today:     day(2026, time.October, 19),
			want:      18,
		},
		{
			name:      "DayBeforeEighteen",
			birthDate: day(2008, time.October, 20),
			today:     day(2026, time.October, 19),
			want:      17,
		},
		{
			name:      "LeapDayBeforeMarchInCommonYear",
			birthDate: day(2008, time.February, 29),
			today:     day(2026, time.February, 28),
			want:      17,
		},
		{
			name:      "LeapDayOnMarchFirstInCommonYear",
			birthDate: day(2008, time.February, 29),
			today:     day(2026, time.March, 1),
			want:      18,
		},
		{
			name:      "LeapDayOnLeapDay",
			birthDate: day(2008, time.February, 29),
			today:     day(2028, time.February, 29),
			want:      20,
		},
		{
			name:      "BornToday",
			birthDate: day(2026, time.October, 19),
			today:     day(2026, time.October, 19),
			want:      0,
		},
		{
			name:      "FutureBirthDate",
			birthDate: day(2027, time.October, 20),
			today:     day(2026, time.October, 19),
			want:      -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, person.Age(tt.birthDate, tt.today))
		})
	}
}

func TestAge_MonotonicAndStepsOnAnniversary(t *testing.T) {
	birthDates := []time.Time{
		day(2000, time.January, 1),
		day(1999, time.December, 31),
		day(2004, time.February, 29),
		day(2010, time.July, 15),
	}

	for _, birth := range birthDates {
		t.Run(birth.Format(time.DateOnly), func(t *testing.T) {
			prev := person.Age(birth, birth)
			assert.Equal(t, 0, prev)

			for today := birth.AddDate(0, 0, 1); today.Before(birth.AddDate(30, 0, 0)); today = today.AddDate(0, 0, 1) {
				got := person.Age(birth, today)

				switch got - prev {
				case 0:
				case 1:
					if birth.Month() == time.February && birth.Day() == 29 && today.Month() == time.March && today.Day() == 1 {
						break
					}

					assert.Equal(t, birth.Month(), today.Month(), "age stepped off the anniversary on %s", today.Format(time.DateOnly))
					assert.Equal(t, birth.Day(), today.Day(), "age stepped off the anniversary on %s", today.Format(time.DateOnly))
				default:
					t.Fatalf("age went from %d to %d on %s", prev, got, today.Format(time.DateOnly))
				}

				prev = got
			}

			assert.Equal(t, 29, prev)
		})
	}
}

func TestPerson_IsMinorOn(t *testing.T) {
	today := day(2026, time.October, 19)

	minor := &person.Person{BirthDate: today.AddDate(-15, 0, 0)}
	adult := &person.Person{BirthDate: today.AddDate(-person.AdultAge, 0, 0)}

	assert.True(t, minor.IsMinorOn(today))
	assert.Equal(t, 15, minor.AgeOn(today))
	assert.False(t, adult.IsMinorOn(today))
	assert.Equal(t, 18, adult.AgeOn(today))
}
