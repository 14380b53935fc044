// Package calendar содержит арифметику календарных дат без времени суток:
// разбор и форматирование в виде ДД.ММ.ГГГГ, прибавление целых месяцев
// с ограничением дня месяца и разницу в днях.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Layout формат даты, в котором даты вводятся пользователем и хранятся в сообщениях.
const Layout = "02.01.2006"

var (
	// ErrFormat возвращается, если строка не соответствует ДД.ММ.ГГГГ
	// или описывает несуществующий день.
	ErrFormat = errors.New("date must be in DD.MM.YYYY format")
	// ErrNegativeMonths возвращается при попытке прибавить отрицательное число месяцев.
	ErrNegativeMonths = errors.New("months must not be negative")
)

// FormatError описывает строку, которую не удалось разобрать как дату.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

// Is позволяет сравнивать ошибку с ErrFormat через errors.Is.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Date календарный день: год, месяц и число.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New создаёт дату, проверяя, что такой день существует.
func New(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, &FormatError{Input: fmt.Sprintf("%04d-%02d-%02d", year, month, day), Reason: "month out of range"}
	}
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, &FormatError{Input: fmt.Sprintf("%04d-%02d-%02d", year, month, day), Reason: "day out of range"}
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// Parse разбирает строку строго в формате ДД.ММ.ГГГГ.
func Parse(text string) (Date, error) {
	if len(text) != len(Layout) || text[2] != '.' || text[5] != '.' {
		return Date{}, &FormatError{Input: text, Reason: "expected DD.MM.YYYY"}
	}
	day, ok1 := digits(text[0:2])
	month, ok2 := digits(text[3:5])
	year, ok3 := digits(text[6:10])
	if !ok1 || !ok2 || !ok3 {
		return Date{}, &FormatError{Input: text, Reason: "expected DD.MM.YYYY"}
	}
	if month < 1 || month > 12 {
		return Date{}, &FormatError{Input: text, Reason: "month out of range"}
	}
	if day < 1 || day > DaysIn(year, time.Month(month)) {
		return Date{}, &FormatError{Input: text, Reason: "day out of range"}
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// Format возвращает дату в виде ДД.ММ.ГГГГ.
func Format(d Date) string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}

func (d Date) String() string {
	return Format(d)
}

// IsZero сообщает, что дата не задана.
func (d Date) IsZero() bool {
	return d == Date{}
}

// IsLeap проверяет год на високосность по григорианскому правилу.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn возвращает количество дней в месяце.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// AddMonths прибавляет n целых месяцев. Если в итоговом месяце меньше дней,
// число ограничивается последним днём месяца: 31.01 + 1 месяц = 28.02 (29.02).
func AddMonths(d Date, n int) (Date, error) {
	if n < 0 {
		return Date{}, ErrNegativeMonths
	}
	total := int(d.Month) - 1 + n
	year := d.Year + total/12
	month := time.Month(total%12 + 1)
	day := min(d.Day, DaysIn(year, month))
	return Date{Year: year, Month: month, Day: day}, nil
}

// FromTime возвращает календарный день момента t в его собственной временной зоне.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time возвращает полночь дня в UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween возвращает число календарных дней от from до to (to - from).
func DaysBetween(from, to Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

// Before сообщает, что d раньше o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// MarshalText сериализует дату как ДД.ММ.ГГГГ.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(Format(d)), nil
}

// UnmarshalText разбирает дату из ДД.ММ.ГГГГ.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
