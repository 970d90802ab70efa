package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, 2030-01-02.
var wednesday = time.Date(2030, 1, 2, 15, 4, 0, 0, time.UTC)

func TestName(t *testing.T) {
	assert.Nil(t, Name("Ada Lovelace"))
	for _, in := range []string{"", "   ", "\t\n"} {
		fe := Name(in)
		require.NotNil(t, fe, "input %q", in)
		assert.Equal(t, KindRequired, fe.Kind)
		assert.Equal(t, "name", fe.Field)
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last+tag@sub.example.org", "  padded@example.com  "}
	for _, in := range valid {
		assert.Nil(t, Email(in), "expected %q to be valid", in)
	}

	fe := Email("")
	require.NotNil(t, fe)
	assert.Equal(t, KindRequired, fe.Kind)

	invalid := []string{"plain", "no-at.example.com", "a@nodot", "a b@example.com", "a@@example.com", "@example.com"}
	for _, in := range invalid {
		fe := Email(in)
		require.NotNil(t, fe, "expected %q to be rejected", in)
		assert.Equal(t, KindInvalidFormat, fe.Kind, in)
	}
}

func TestPhone(t *testing.T) {
	assert.Nil(t, Phone("", 10), "phone is optional")
	assert.Nil(t, Phone("+1 (212) 555-1212", 10))
	assert.Nil(t, Phone("2125551212", 10))

	rejects := []string{
		"555-1212",          // too few digits
		"+1 212 555 121x",   // bad character
		"212.555.1212",      // dots are not separators here
		"call me maybe",     // no digits
		"(212) 555-121",     // nine digits
		"+44 20 7946 0958#", // trailing symbol
	}
	for _, in := range rejects {
		fe := Phone(in, 10)
		require.NotNil(t, fe, "expected %q to be rejected", in)
		assert.Equal(t, KindInvalidFormat, fe.Kind, in)
	}

	// Non-positive minimum falls back to the default policy.
	assert.NotNil(t, Phone("12345", 0))
	assert.Nil(t, Phone("12345", 5))
}

func TestMessage_Boundary(t *testing.T) {
	assert.Nil(t, Message(""))
	assert.Nil(t, Message(strings.Repeat("a", MaxMessageLength)))

	fe := Message(strings.Repeat("a", MaxMessageLength+1))
	require.NotNil(t, fe)
	assert.Equal(t, KindTooLong, fe.Kind)

	// Characters, not bytes.
	assert.Nil(t, Message(strings.Repeat("é", MaxMessageLength)))
}

func TestMessageOrDefault(t *testing.T) {
	assert.Equal(t, DefaultMessage, MessageOrDefault("   "))
	assert.Equal(t, "hello", MessageOrDefault("  hello "))
}

func TestBusinessDays(t *testing.T) {
	days := BusinessDays(wednesday, BookingWindowDays)

	require.NotEmpty(t, days)
	assert.Equal(t, "2030-01-03", days[0], "today is excluded")
	assert.NotContains(t, days, "2030-01-02")
	assert.NotContains(t, days, "2030-01-05", "Saturday")
	assert.NotContains(t, days, "2030-01-06", "Sunday")
	assert.Contains(t, days, "2030-02-01", "day 30 is a Friday")
	assert.NotContains(t, days, "2030-02-04", "day 33 is out of range")

	for _, d := range days {
		parsed, err := time.Parse(DateLayout, d)
		require.NoError(t, err)
		assert.True(t, IsBusinessDay(parsed.Weekday()), d)
	}
	// 30 days from a Wednesday contain 22 weekdays.
	assert.Len(t, days, 22)
}

func TestDate(t *testing.T) {
	assert.Nil(t, Date("2030-01-03", wednesday))
	assert.Nil(t, Date(" 2030-01-07 ", wednesday))

	fe := Date("", wednesday)
	require.NotNil(t, fe)
	assert.Equal(t, KindRequired, fe.Kind)

	for _, in := range []string{"2030-01-02", "2030-01-05", "2030-03-01", "2029-12-31", "01/07/2030", "2030-13-01"} {
		fe := Date(in, wednesday)
		require.NotNil(t, fe, "expected %q to be out of range", in)
		assert.Equal(t, KindOutOfRange, fe.Kind, in)
	}
}

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()
	require.Len(t, slots, 18)
	assert.Equal(t, "9:00 AM", slots[0])
	assert.Equal(t, "12:00 PM", slots[6])
	assert.Equal(t, "5:30 PM", slots[17])

	// Callers get a copy.
	slots[0] = "tampered"
	assert.Equal(t, "9:00 AM", TimeSlots()[0])

	assert.Nil(t, TimeSlot("2:30 PM"))

	fe := TimeSlot("")
	require.NotNil(t, fe)
	assert.Equal(t, KindRequired, fe.Kind)

	for _, in := range []string{"8:30 AM", "6:00 PM", "14:30", "2:15 PM", "tampered"} {
		fe := TimeSlot(in)
		require.NotNil(t, fe, in)
		assert.Equal(t, KindNotRecognized, fe.Kind, in)
	}
}

func TestErrors_FirstFailureWins(t *testing.T) {
	errs := Errors{}
	errs.Add(nil)
	errs.Add(&FieldError{Field: "email", Kind: KindRequired, Message: "first"})
	errs.Add(&FieldError{Field: "email", Kind: KindInvalidFormat, Message: "second"})

	assert.Equal(t, Errors{"email": "first"}, errs)
	assert.Equal(t, "email: first", (&FieldError{Field: "email", Message: "first"}).Error())
}

func TestLengthLimits_MatchColumns(t *testing.T) {
	assert.Nil(t, Name(strings.Repeat("é", MaxNameLength)), "characters, not bytes")
	fe := Name(strings.Repeat("n", MaxNameLength+1))
	require.NotNil(t, fe)
	assert.Equal(t, KindTooLong, fe.Kind)
	assert.Equal(t, "name", fe.Field)

	assert.Nil(t, Company(""))
	assert.Nil(t, Company(strings.Repeat("c", MaxCompanyLength)))
	fe = Company(strings.Repeat("c", MaxCompanyLength+1))
	require.NotNil(t, fe)
	assert.Equal(t, KindTooLong, fe.Kind)
	assert.Equal(t, "company", fe.Field)

	fe = Email(strings.Repeat("a", MaxEmailLength) + "@b.co")
	require.NotNil(t, fe)
	assert.Equal(t, KindTooLong, fe.Kind)

	// Valid characters and enough digits, but wider than the column.
	fe = Phone("+1 (212) 555-1212 ext 4444 4444 4444 44", 10)
	require.NotNil(t, fe)
	assert.Equal(t, KindTooLong, fe.Kind)
	assert.Equal(t, "phone", fe.Field)
	assert.Nil(t, Phone("+1 (212) 555-1212 4444 4444 44", 10))
}
