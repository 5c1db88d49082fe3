//go:build unit

package voucherparse_test

import (
	"testing"
	"time"

	"lodgekeeper/internal/pkg/voucherparse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVoucher = `Musangu Travel Services
Passenger name/s: Banda Chileshe, Mwansa K
Voucher #: MV-10234
Check-in: 2025-06-01
Check-out: 2025-06-05
Number in party: 2`

func TestParse(t *testing.T) {
	got := voucherparse.Parse(sampleVoucher)

	assert.Equal(t, "Banda Chileshe", got.CustomerName)
	assert.Equal(t, "MV-10234", got.VoucherNumber)

	require.NotNil(t, got.CheckInDate)
	require.NotNil(t, got.CheckOutDate)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *got.CheckInDate)
	assert.Equal(t, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), *got.CheckOutDate)
	assert.Equal(t, sampleVoucher, got.RawText)
}

func TestParseCustomerName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "labeled name on the same line",
			text: "Passenger name/s: Tembo Lungu",
			want: "Tembo Lungu",
		},
		{
			name: "first passenger of several",
			text: "Passenger names: Zulu Mutale; Phiri Chanda",
			want: "Zulu Mutale",
		},
		{
			name: "name on the following line",
			text: "Passenger name/s:\n\nKambole Musonda\nVoucher: 123456",
			want: "Kambole Musonda",
		},
		{
			name: "label followed only by party meta",
			text: "Passenger name/s: Number in party: 1\nSakala Bwalya",
			want: "Sakala Bwalya",
		},
		{
			name: "no label means no guess",
			text: "Some unrelated heading\nBanda Chileshe",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, voucherparse.ParseCustomerName(tt.text))
		})
	}
}

func TestParseVoucherNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "labeled alphanumeric code", text: "Voucher #: MV-10234", want: "MV-10234"},
		{name: "labeled numeric reference", text: "Booking ref 556677", want: "556677"},
		{name: "bare alphanumeric code", text: "Issued under AB12345 for travel", want: "AB12345"},
		{name: "bare long number", text: "Confirmation 20250601123", want: "20250601123"},
		{name: "short fragments ignored", text: "Ref: AB1", want: ""},
		{name: "nothing recognizable", text: "no codes here", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, voucherparse.ParseVoucherNumber(tt.text))
		})
	}
}

func TestParseDates(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("labeled dates win", func(t *testing.T) {
		checkIn, checkOut := voucherparse.ParseDates("Arrival: 2025-06-01\nDeparture: 2025-06-05\nPrinted 2025-05-20")
		require.NotNil(t, checkIn)
		require.NotNil(t, checkOut)
		assert.Equal(t, day(2025, 6, 1), *checkIn)
		assert.Equal(t, day(2025, 6, 5), *checkOut)
	})

	t.Run("day-first slash dates", func(t *testing.T) {
		checkIn, checkOut := voucherparse.ParseDates("Stay 12/07/2025 - 15/07/2025")
		require.NotNil(t, checkIn)
		require.NotNil(t, checkOut)
		assert.Equal(t, day(2025, 7, 12), *checkIn)
		assert.Equal(t, day(2025, 7, 15), *checkOut)
	})

	t.Run("single date fills only check-in", func(t *testing.T) {
		checkIn, checkOut := voucherparse.ParseDates("Valid for 03/09/2025")
		require.NotNil(t, checkIn)
		assert.Equal(t, day(2025, 9, 3), *checkIn)
		assert.Nil(t, checkOut)
	})

	t.Run("no dates", func(t *testing.T) {
		checkIn, checkOut := voucherparse.ParseDates("no dates at all")
		assert.Nil(t, checkIn)
		assert.Nil(t, checkOut)
	})
}
