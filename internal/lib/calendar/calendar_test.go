package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"08.01.2026", Date{2026, time.January, 8}},
		{"29.02.2024", Date{2024, time.February, 29}},
		{"31.12.1999", Date{1999, time.December, 31}},
		{"01.03.2000", Date{2000, time.March, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, Format(got))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not padded day", "8.01.2026"},
		{"not padded month", "08.1.2026"},
		{"two digit year", "08.01.26"},
		{"dash separator", "08-01-2026"},
		{"iso layout", "2026-01-08"},
		{"letters", "aa.bb.cccc"},
		{"sign inside", "+8.01.2026"},
		{"trailing space", "08.01.2026 "},
		{"zero day", "00.01.2026"},
		{"zero month", "08.00.2026"},
		{"month 13", "08.13.2026"},
		{"april 31", "31.04.2026"},
		{"feb 29 non leap", "29.02.2025"},
		{"feb 29 century", "29.02.1900"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat))

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.in, fe.Input)
		})
	}
}

func TestAddMonths_TableTests(t *testing.T) {
	tests := []struct {
		name string
		d    Date
		n    int
		want Date
	}{
		{"simple", Date{2026, time.January, 8}, 3, Date{2026, time.April, 8}},
		{"zero months", Date{2026, time.May, 31}, 0, Date{2026, time.May, 31}},
		{"clamp non leap", Date{2026, time.January, 31}, 1, Date{2026, time.February, 28}},
		{"clamp leap", Date{2024, time.January, 31}, 1, Date{2024, time.February, 29}},
		{"clamp 30 day month", Date{2026, time.March, 31}, 1, Date{2026, time.April, 30}},
		{"year rollover", Date{2025, time.November, 20}, 3, Date{2026, time.February, 20}},
		{"december plus one", Date{2025, time.December, 15}, 1, Date{2026, time.January, 15}},
		{"whole years", Date{2024, time.February, 29}, 12, Date{2025, time.February, 28}},
		{"four years", Date{2024, time.February, 29}, 48, Date{2028, time.February, 29}},
		{"century non leap", Date{1899, time.December, 31}, 2, Date{1900, time.February, 28}},
		{"400 leap", Date{1999, time.December, 31}, 2, Date{2000, time.February, 29}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddMonths(tt.d, tt.n)
			if err != nil {
				t.Fatalf("AddMonths(%v, %d) unexpected error: %v", tt.d, tt.n, err)
			}
			if got != tt.want {
				t.Errorf("AddMonths(%v, %d) = %v, want %v", tt.d, tt.n, got, tt.want)
			}
		})
	}
}

func TestAddMonths_Negative(t *testing.T) {
	_, err := AddMonths(Date{2026, time.January, 1}, -1)
	assert.ErrorIs(t, err, ErrNegativeMonths)
}

func TestAddMonths_AlwaysValid(t *testing.T) {
	for year := 1999; year <= 2001; year++ {
		for month := time.January; month <= time.December; month++ {
			for day := 1; day <= DaysIn(year, month); day++ {
				d := Date{year, month, day}
				for n := 0; n <= 25; n++ {
					got, err := AddMonths(d, n)
					require.NoError(t, err)
					_, err = New(got.Year, got.Month, got.Day)
					require.NoErrorf(t, err, "AddMonths(%v, %d) = %v", d, n, got)
					assert.LessOrEqual(t, got.Day, d.Day)
				}
			}
		}
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2026, time.January))
	assert.Equal(t, 28, DaysIn(2026, time.February))
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2100, time.February))
	assert.Equal(t, 29, DaysIn(2000, time.February))
	assert.Equal(t, 30, DaysIn(2026, time.November))
}

func TestDaysBetween(t *testing.T) {
	today := Date{2026, time.March, 1}

	assert.Equal(t, 0, DaysBetween(today, today))
	assert.Equal(t, 7, DaysBetween(today, Date{2026, time.March, 8}))
	assert.Equal(t, -1, DaysBetween(today, Date{2026, time.February, 28}))
	assert.Equal(t, 365, DaysBetween(Date{2025, time.January, 1}, Date{2026, time.January, 1}))
	assert.Equal(t, 2, DaysBetween(Date{2024, time.February, 28}, Date{2024, time.March, 1}))
}

func TestFromTime_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	late := time.Date(2026, time.January, 8, 23, 59, 0, 0, loc)
	early := time.Date(2026, time.January, 8, 0, 1, 0, 0, loc)

	assert.Equal(t, Date{2026, time.January, 8}, FromTime(late))
	assert.Equal(t, FromTime(early), FromTime(late))
}

func TestBefore(t *testing.T) {
	a := Date{2026, time.January, 8}
	b := Date{2026, time.January, 9}
	c := Date{2025, time.December, 31}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, c.Before(a))
	assert.False(t, a.Before(a))
}

func TestTextMarshaling(t *testing.T) {
	d := Date{2026, time.April, 8}
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "08.04.2026", string(text))

	var got Date
	require.NoError(t, got.UnmarshalText(text))
	assert.Equal(t, d, got)

	assert.ErrorIs(t, got.UnmarshalText([]byte("2026-04-08")), ErrFormat)
}
