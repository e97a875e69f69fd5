package booking

import (
	"fmt"
	"time"
)

type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
)

func (p Period) IsValid() bool {
	return p == PeriodMorning || p == PeriodAfternoon
}

// Date is a calendar day without a wall-clock component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}

// TimeSlot is one preferred appointment window: a (date, period) pair.
type TimeSlot struct {
	Date   Date
	Period Period
}

// SlotPolicy bounds the time-slot manager: at most MaxSlots selections,
// dates within [today, today+WindowDays] inclusive.
type SlotPolicy struct {
	MaxSlots   int
	WindowDays int
}

func DefaultSlotPolicy() SlotPolicy {
	return SlotPolicy{MaxSlots: 6, WindowDays: 365}
}

func (p SlotPolicy) InWindow(d Date, today time.Time) bool {
	start := NewDate(today)
	end := NewDate(today.AddDate(0, 0, p.WindowDays))
	return !d.Before(start) && !d.After(end)
}
