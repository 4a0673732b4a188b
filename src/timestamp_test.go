package cidermill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func draw_local_date(t *rapid.T, year_lo int, year_hi int) DateTime {
	var year = rapid.IntRange(year_lo, year_hi).Draw(t, "year")
	var month = rapid.IntRange(1, 12).Draw(t, "month")
	return DateTime{
		Kind:   DateLocal,
		Year:   year,
		Month:  month,
		Day:    rapid.IntRange(1, days_in_month(year, month)).Draw(t, "day"),
		Hour:   rapid.IntRange(0, 23).Draw(t, "hour"),
		Minute: rapid.IntRange(0, 59).Draw(t, "minute"),
		Second: rapid.IntRange(0, 59).Draw(t, "second"),
	}
}

func Test_ProDOS_KnownValue(t *testing.T) {
	// 1987-06-05 13:42, packed by hand.
	var dt = FromProDOS(0x0d2aaec5)
	assert.Equal(t, DateTime{Kind: DateLocal, Year: 1987, Month: 6, Day: 5, Hour: 13, Minute: 42}, dt)
	assert.Equal(t, uint32(0x0d2aaec5), ToProDOS(dt))
}

func Test_ProDOS_Sentinels(t *testing.T) {
	assert.Equal(t, NoDateTime, FromProDOS(0))
	assert.Equal(t, uint32(0), ToProDOS(NoDateTime))
	assert.Equal(t, uint32(0), ToProDOS(InvalidDateTime))

	// Month 13 is syntactically fine and names nothing.
	assert.Equal(t, InvalidDateTime, FromProDOS(uint32(87)<<9|uint32(13)<<5|1))

	// Years outside every pivot range can't be stored.
	assert.Equal(t, uint32(0), ToProDOS(DateTime{Kind: DateLocal, Year: 1930, Month: 1, Day: 1}))
	assert.Equal(t, uint32(0), ToProDOS(DateTime{Kind: DateLocal, Year: 2050, Month: 1, Day: 1}))
}

// The 100-127 year convention: 2000-2027 goes out as 100+ and comes
// back intact.
func Test_ProDOS_YearPivot(t *testing.T) {
	var dt = DateTime{Kind: DateLocal, Year: 2005, Month: 3, Day: 14, Hour: 9, Minute: 26}
	var packed = ToProDOS(dt)
	assert.Equal(t, 105, int(packed>>9)&0x7f)
	assert.Equal(t, dt, FromProDOS(packed))

	// Raw years 0-39 also decode as 2000s (the "official" mapping).
	var official = uint32(5)<<9 | uint32(3)<<5 | 14
	assert.Equal(t, 2005, FromProDOS(official).Year)

	// 2028-2039 round trips through the low range.
	var late = DateTime{Kind: DateLocal, Year: 2030, Month: 1, Day: 2}
	assert.Equal(t, 30, int(ToProDOS(late)>>9)&0x7f)
	assert.Equal(t, late, FromProDOS(ToProDOS(late)))
}

func Test_ProDOS_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var dt = draw_local_date(t, 1940, 2039)
		dt.Second = 0 // ProDOS has no seconds field
		assert.Equal(t, dt, FromProDOS(ToProDOS(dt)))
	})
}

func Test_Pascal_KnownValue(t *testing.T) {
	// 1987-06-05, month in the low nibble.
	var dt = FromPascal(0xae56)
	assert.Equal(t, DateTime{Kind: DateLocal, Year: 1987, Month: 6, Day: 5}, dt)
	assert.Equal(t, uint16(0xae56), ToPascal(dt))
}

func Test_Pascal_Sentinels(t *testing.T) {
	assert.Equal(t, NoDateTime, FromPascal(0))
	// Month 0 means no date even with other bits set.
	assert.Equal(t, NoDateTime, FromPascal(uint16(87)<<9|uint16(5)<<4))
	// Day 0 is in range for the field but names nothing.
	assert.Equal(t, InvalidDateTime, FromPascal(uint16(87)<<9|uint16(0)<<4|6))
	// 2000-2027 would need the reserved year 100+; never emitted.
	assert.Equal(t, uint16(0), ToPascal(DateTime{Kind: DateLocal, Year: 2005, Month: 1, Day: 1}))
}

func Test_Pascal_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var year int
		if rapid.Bool().Draw(t, "late") {
			year = rapid.IntRange(2028, 2039).Draw(t, "year")
		} else {
			year = rapid.IntRange(1940, 1999).Draw(t, "year")
		}
		var dt = draw_local_date(t, year, year)
		dt.Hour = 0
		dt.Minute = 0
		dt.Second = 0
		assert.Equal(t, dt, FromPascal(ToPascal(dt)))
	})
}

/* Known HFS timestamps; all divisible checks below rely on the 1904
   epoch offset being a whole number of days. */
var hfs_fixtures = []uint32{0xa8fee98c, 0xba214379, 0xbb3d7f6c, 0xdf196de0}

func Test_HFS_Fixtures(t *testing.T) {
	for _, when := range hfs_fixtures {
		var dt = FromHFS(when)
		require.Equal(t, DateLocal, dt.Kind)
		assert.Equal(t, when, ToHFS(dt), "0x%08x", when)

		// The local clock face is the literal division of the raw
		// seconds; no zone or DST adjustment sneaks in.
		assert.Equal(t, int(when%86400)/3600, dt.Hour, "0x%08x", when)
		assert.Equal(t, int(when%3600)/60, dt.Minute, "0x%08x", when)
		assert.Equal(t, int(when%60), dt.Second, "0x%08x", when)
	}
}

func Test_HFS_RoundTrip(t *testing.T) {
	assert.Equal(t, NoDateTime, FromHFS(0))
	assert.Equal(t, uint32(0), ToHFS(NoDateTime))

	rapid.Check(t, func(t *rapid.T) {
		var when = rapid.Uint32Range(1, 0xffffffff).Draw(t, "when")
		assert.Equal(t, when, ToHFS(FromHFS(when)))
	})
}

func Test_IIgs_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var dt = draw_local_date(t, 1940, 2155)
		var packed = ToIIgs(dt)
		assert.Equal(t, dt, FromIIgs(packed[:]))
		// And the bytes themselves are stable.
		var again = ToIIgs(FromIIgs(packed[:]))
		assert.Equal(t, packed, again)
	})
}

func Test_IIgs_Fields(t *testing.T) {
	// 2001-02-03 04:05:06 was a Saturday (weekday 7).
	var dt = DateTime{Kind: DateLocal, Year: 2001, Month: 2, Day: 3, Hour: 4, Minute: 5, Second: 6}
	var packed = ToIIgs(dt)
	assert.Equal(t, [8]byte{6, 5, 4, 1, 2, 1, 0, 7}, packed)

	assert.Equal(t, NoDateTime, FromIIgs(make([]byte, 8)))
	var zero [8]byte
	assert.Equal(t, zero, ToIIgs(NoDateTime))

	// Stored year 39 is 2039, stored year 40 is 1940.
	assert.Equal(t, 2039, FromIIgs([]byte{0, 0, 0, 39, 0, 0, 0, 1}).Year)
	assert.Equal(t, 1940, FromIIgs([]byte{0, 0, 0, 40, 0, 0, 0, 1}).Year)
}

func Test_MSDOS_KnownValue(t *testing.T) {
	// 1991-10-26 14:30:42.
	var dt = FromMSDOS(0x175a, 0x73d5)
	assert.Equal(t, DateTime{Kind: DateLocal, Year: 1991, Month: 10, Day: 26, Hour: 14, Minute: 30, Second: 42}, dt)

	var date, tm = ToMSDOS(dt)
	assert.Equal(t, uint16(0x175a), date)
	assert.Equal(t, uint16(0x73d5), tm)
}

func Test_MSDOS_Sentinels(t *testing.T) {
	assert.Equal(t, NoDateTime, FromMSDOS(0, 0))
	assert.Equal(t, InvalidDateTime, FromMSDOS(uint16(11)<<9|uint16(2)<<5|30, 0)) // Feb 30
	var date, tm = ToMSDOS(DateTime{Kind: DateLocal, Year: 1975, Month: 1, Day: 1})
	assert.Zero(t, date)
	assert.Zero(t, tm)
}

func Test_MSDOS_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var dt = draw_local_date(t, 1980, 2107)
		dt.Second &^= 1 // two-second resolution
		var date, tm = ToMSDOS(dt)
		assert.Equal(t, dt, FromMSDOS(date, tm))
	})
}

func Test_Unix32_RoundTrip(t *testing.T) {
	assert.Equal(t, NoDateTime, FromUnix32(-0x80000000))
	assert.Equal(t, int32(-0x80000000), ToUnix32(NoDateTime))

	for _, when := range []int32{0, 1, 1000000000, 0x7fffffff, -0x7fffffff} {
		var dt = FromUnix32(when)
		require.Equal(t, DateLocal, dt.Kind)
		// Wall-clock fields are stable even if the zone is playing
		// DST games around the instant.
		assert.Equal(t, dt, FromUnix32(ToUnix32(dt)), "%d", when)
	}
}
