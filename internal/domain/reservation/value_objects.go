package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	ErrEmptyCustomer    = errors.New("customer name cannot be empty")
)

// StayPeriod is the half-open interval [check-in, check-out): the check-out
// day is free for a new check-in on the same day. Both endpoints are
// calendar dates normalized to UTC midnight.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	checkIn = truncateToDay(checkIn)
	checkOut = truncateToDay(checkOut)
	if !checkIn.Before(checkOut) {
		return StayPeriod{}, ErrInvalidDateRange
	}
	return StayPeriod{checkIn: checkIn, checkOut: checkOut}, nil
}

func (s StayPeriod) CheckIn() time.Time  { return s.checkIn }
func (s StayPeriod) CheckOut() time.Time { return s.checkOut }

func (s StayPeriod) Nights() int {
	return int(s.checkOut.Sub(s.checkIn).Hours() / 24)
}

// Overlaps implements the interval predicate: [a,b) and [c,d) overlap
// iff a < d and c < b.
func (s StayPeriod) Overlaps(other StayPeriod) bool {
	return s.checkIn.Before(other.checkOut) && other.checkIn.Before(s.checkOut)
}

// Covers reports whether the given day falls inside the stay. The check-out
// day itself is not covered.
func (s StayPeriod) Covers(day time.Time) bool {
	day = truncateToDay(day)
	return !day.Before(s.checkIn) && day.Before(s.checkOut)
}

func (s StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", s.checkIn.Format(time.DateOnly), s.checkOut.Format(time.DateOnly))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type CustomerName struct {
	value string
}

func NewCustomerName(value string) (CustomerName, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return CustomerName{}, ErrEmptyCustomer
	}
	return CustomerName{value: value}, nil
}

func (n CustomerName) String() string {
	return n.value
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
