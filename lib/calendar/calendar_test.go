package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		text     string
		expected Date
		fails    bool
	}{
		{text: "2024-08-26", expected: Date{Year: 2024, Month: time.August, Day: 26}},
		{text: "2000-02-29", expected: Date{Year: 2000, Month: time.February, Day: 29}},
		{text: "0999-01-01", expected: Date{Year: 999, Month: time.January, Day: 1}},
		{text: "2023-02-29", fails: true},
		{text: "2024/08/26", fails: true},
		{text: "26-08-2024", fails: true},
		{text: "", fails: true},
	}

	for _, test := range cases {
		d, err := Parse(test.text)
		if test.fails {
			require.Error(t, err, test.text)
			continue
		}
		require.NoError(t, err, test.text)
		require.Equal(t, test.expected, d)
		require.Equal(t, test.text, d.String())
	}
}

func TestTodayUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	la := time.FixedZone("UTC-7", -7*60*60)

	// 2024-03-01 02:30 in Tokyo is still Feb 29th on the west coast
	now := time.Date(2024, time.March, 1, 2, 30, 0, 0, tokyo)

	require.Equal(t, MustParse("2024-03-01"), Today(now, tokyo))
	require.Equal(t, MustParse("2024-02-29"), Today(now, la))
}

func TestBefore(t *testing.T) {
	cases := []struct {
		a, b     string
		expected bool
	}{
		{a: "2024-01-01", b: "2024-01-02", expected: true},
		{a: "2024-01-31", b: "2024-02-01", expected: true},
		{a: "2023-12-31", b: "2024-01-01", expected: true},
		{a: "2024-01-01", b: "2024-01-01", expected: false},
		{a: "2024-05-01", b: "2024-04-30", expected: false},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, MustParse(test.a).Before(MustParse(test.b)), "%s < %s", test.a, test.b)
	}
}

func TestJSONUsesDateLayout(t *testing.T) {
	type payload struct {
		Arrival Date `json:"arrivalDate"`
	}

	out, err := json.Marshal(payload{Arrival: MustParse("2024-07-04")})
	require.NoError(t, err)
	require.JSONEq(t, `{"arrivalDate":"2024-07-04"}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"arrivalDate":"2025-01-09"}`), &in))
	require.Equal(t, MustParse("2025-01-09"), in.Arrival)

	require.Error(t, json.Unmarshal([]byte(`{"arrivalDate":"tomorrow"}`), &in))
}

func TestInIsMidnight(t *testing.T) {
	d := MustParse("2024-12-31")
	at := d.In(time.UTC)
	require.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), at)
	require.Equal(t, d, FromTime(at))
}
