// Package voucherparse extracts booking fields from raw OCR text of
// uploaded travel vouchers. Extraction is best-effort: every field may come
// back empty and the caller is expected to put the result in front of a
// human for review before anything is booked.
package voucherparse

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

type Extracted struct {
	CustomerName  string
	VoucherNumber string
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
	RawText       string
}

// Parse runs all field extractors over the OCR text.
func Parse(rawText string) Extracted {
	checkIn, checkOut := ParseDates(rawText)
	return Extracted{
		CustomerName:  ParseCustomerName(rawText),
		VoucherNumber: ParseVoucherNumber(rawText),
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		RawText:       rawText,
	}
}

var (
	passengerLabelRe = regexp.MustCompile(`(?i)Passenger\s+name/?s?\s*[:\-]?\s*(.*)`)
	numberInPartyRe  = regexp.MustCompile(`(?i)number\s+in\s+party`)
)

// ParseCustomerName prefers an explicit "Passenger name/s" label, taking the
// first passenger when several are listed. Without that label it returns ""
// rather than guessing from surrounding text.
func ParseCustomerName(text string) string {
	loc := passengerLabelRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}

	candidate := strings.TrimSpace(text[loc[2]:loc[3]])
	// Same line may only carry meta like "Number in party: 1"
	if numberInPartyRe.MatchString(candidate) {
		candidate = ""
	}

	if candidate == "" {
		// Value is on a following line
		for _, line := range strings.Split(text[loc[1]:], "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				candidate = trimmed
				break
			}
		}
	}

	for _, sep := range []string{",", ";", "/", "&"} {
		if idx := strings.Index(candidate, sep); idx >= 0 {
			candidate = strings.TrimSpace(candidate[:idx])
			break
		}
	}

	if len(candidate) <= 2 {
		return ""
	}
	switch strings.ToLower(candidate) {
	case "date", "check", "voucher", "number":
		return ""
	}
	return candidate
}

var voucherNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:voucher|ref|reference|booking)[\s#:]+([A-Z0-9\-]+)`),
	regexp.MustCompile(`(?i)(?:voucher|ref|reference|booking)[\s#:]+([0-9]{4,})`),
	regexp.MustCompile(`([A-Z]{2,}[0-9]{3,})`), // alphanumeric codes
	regexp.MustCompile(`([0-9]{6,})`),          // long numeric codes
}

// ParseVoucherNumber picks up labeled references first, then bare codes.
// Anything shorter than 4 characters is noise.
func ParseVoucherNumber(text string) string {
	for _, re := range voucherNumberPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			num := strings.TrimSpace(m[1])
			if len(num) >= 4 {
				return num
			}
		}
	}
	return ""
}

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
		regexp.MustCompile(`\d{4}[/-]\d{1,2}[/-]\d{1,2}`),
		regexp.MustCompile(`(?i)\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{2,4}`),
	}
	checkInLabelRe  = regexp.MustCompile(`(?i)(?:check[-\s]?in|arrival|from)[:\s]+(\d{4}[/-]\d{1,2}[/-]\d{1,2}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
	checkOutLabelRe = regexp.MustCompile(`(?i)(?:check[-\s]?out|departure|to)[:\s]+(\d{4}[/-]\d{1,2}[/-]\d{1,2}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
)

// ParseDates extracts check-in and check-out dates. Labeled dates win; when
// only unlabeled dates are present the first is treated as check-in and the
// second as check-out. Day-first interpretation is preferred since vouchers
// in circulation are mostly DD/MM/YYYY.
func ParseDates(text string) (checkIn, checkOut *time.Time) {
	if m := checkInLabelRe.FindStringSubmatch(text); m != nil {
		checkIn = parseOne(m[1])
	}
	if m := checkOutLabelRe.FindStringSubmatch(text); m != nil {
		checkOut = parseOne(m[1])
	}
	if checkIn != nil && checkOut != nil {
		return checkIn, checkOut
	}

	var found []time.Time
	for _, re := range datePatterns {
		for _, raw := range re.FindAllString(text, -1) {
			if d := parseOne(raw); d != nil {
				found = append(found, *d)
			}
		}
	}

	if checkIn == nil && len(found) >= 1 {
		checkIn = &found[0]
	}
	if checkOut == nil && len(found) >= 2 {
		checkOut = &found[1]
	}
	return checkIn, checkOut
}

func parseOne(raw string) *time.Time {
	parsed, err := dateparse.ParseAny(raw, dateparse.PreferMonthFirst(false))
	if err != nil {
		parsed, err = dateparse.ParseAny(raw)
		if err != nil {
			return nil
		}
	}
	d := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
