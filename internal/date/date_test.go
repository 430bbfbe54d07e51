package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Parse canonical form", func(t *testing.T) {
		d, err := Parse("2024-02-29")
		require.NoError(t, err)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.February, d.Month())
		assert.Equal(t, 29, d.DayOfMonth())
	})

	t.Run("Reject malformed input", func(t *testing.T) {
		for _, raw := range []string{"", "2024-2-9", "02-09-2024", "2024-02-30", "not a date"} {
			_, err := Parse(raw)
			assert.Error(t, err, "input %q", raw)
		}
	})
}

func TestDayArithmetic(t *testing.T) {
	t.Run("Add crosses month boundary", func(t *testing.T) {
		d := MustParse("2024-01-31")
		assert.Equal(t, "2024-02-01", d.Add(1).String())
		assert.Equal(t, "2024-01-30", d.Add(-1).String())
	})

	t.Run("Range comparison is inclusive", func(t *testing.T) {
		start := MustParse("2024-03-01")
		end := MustParse("2024-03-07")
		assert.True(t, start.In(start, end))
		assert.True(t, end.In(start, end))
		assert.False(t, MustParse("2024-03-08").In(start, end))
		assert.False(t, MustParse("2024-02-29").In(start, end))
	})
}

func TestMonthBounds(t *testing.T) {
	cases := []struct {
		day  string
		end  string
		days int
	}{
		{"2024-02-10", "2024-02-29", 29},
		{"2023-02-10", "2023-02-28", 28},
		{"2024-04-05", "2024-04-30", 30},
		{"2024-12-31", "2024-12-31", 31},
	}
	for _, tc := range cases {
		d := MustParse(tc.day)
		assert.Equal(t, tc.end, d.MonthEnd().String())
		assert.Equal(t, tc.days, d.DaysInMonth())
		assert.Equal(t, 1, d.MonthStart().DayOfMonth())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2024-06-15")

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-15"`, string(data))

	var back Day
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"15/06/2024"`), &back))
}
