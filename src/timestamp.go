package cidermill

/*-------------------------------------------------------------
 *
 * Purpose:	Bidirectional codecs for the six date/time encodings
 *		found on vintage Apple and PC media.
 *
 *		Results are a small sum type rather than magic
 *		sentinel dates: a DateTime is NoDate (field was
 *		zero/reserved), Invalid (bits name a day that doesn't
 *		exist), or a broken-down local wall-clock time.
 *
 *		HFS deserves a note: the on-disk value is seconds
 *		since 1904-01-01 in *local* time.  We convert by
 *		shifting to the UNIX epoch and breaking the value down
 *		as if it were UTC, then relabel the fields as local.
 *		That keeps the literal clock face stable across DST
 *		transitions, which is what the old software expects.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"time"
)

type DateTimeKind int

const (
	DateNone    DateTimeKind = iota /* no date stored */
	DateInvalid                     /* bits are in range but name no real day */
	DateLocal                       /* valid broken-down local time */
)

type DateTime struct {
	Kind   DateTimeKind
	Year   int /* full year, e.g. 1987 */
	Month  int /* 1-12 */
	Day    int /* 1-31 */
	Hour   int /* 0-23 */
	Minute int /* 0-59 */
	Second int /* 0-59 */
}

var NoDateTime = DateTime{Kind: DateNone}
var InvalidDateTime = DateTime{Kind: DateInvalid}

func (dt DateTime) String() string {
	switch dt.Kind {
	case DateNone:
		return "[no date]"
	case DateInvalid:
		return "[invalid date]"
	default:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
			dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
	}
}

// Time converts to a time.Time in the given location.  Only valid
// for Kind == DateLocal.
func (dt DateTime) Time(loc *time.Location) time.Time {
	Assert(dt.Kind == DateLocal)
	return time.Date(dt.Year, time.Month(dt.Month), dt.Day,
		dt.Hour, dt.Minute, dt.Second, 0, loc)
}

func days_in_month(year int, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// check_fields validates a decoded broken-down time, turning
// syntactically-in-range nonsense into the Invalid sentinel.
func check_fields(dt DateTime) DateTime {
	if dt.Month < 1 || dt.Month > 12 ||
		dt.Day < 1 || dt.Day > days_in_month(dt.Year, dt.Month) ||
		dt.Hour > 23 || dt.Minute > 59 || dt.Second > 59 {
		return InvalidDateTime
	}
	return dt
}

/*
 * ProDOS and Pascal share a 7-bit year with a pivot convention.
 * 0-39 means 2000-2039, 40-99 means 1940-1999, and 100-127 means
 * 2000-2027.  The last range is technically out of spec but is what
 * fielded software actually writes, so we accept and generate it.
 */

func prodos_year(raw int) int {
	if raw < 40 {
		return 2000 + raw
	}
	return 1900 + raw
}

/*-------------------------------------------------------------
 *
 * Name:	FromProDOS / ToProDOS
 *
 * Purpose:	ProDOS packed date/time.  Date in the low 16 bits as
 *		YYYYYYYMMMMDDDDD, time in the high 16 as
 *		000hhhhh00mmmmmm.  Reserved time bits are tolerated
 *		on read.
 *
 *--------------------------------------------------------------*/

func FromProDOS(when uint32) DateTime {
	if when == 0 {
		return NoDateTime
	}
	var date = int(when & 0xffff)
	var tm = int(when >> 16)
	return check_fields(DateTime{
		Kind:   DateLocal,
		Year:   prodos_year(date >> 9),
		Month:  (date >> 5) & 0x0f,
		Day:    date & 0x1f,
		Hour:   (tm >> 8) & 0x1f,
		Minute: tm & 0x3f,
	})
}

func ToProDOS(dt DateTime) uint32 {
	if dt.Kind != DateLocal {
		return 0
	}
	var raw_year int
	switch {
	case dt.Year >= 1940 && dt.Year <= 1999:
		raw_year = dt.Year - 1900 /* 40-99 */
	case dt.Year >= 2000 && dt.Year <= 2027:
		raw_year = dt.Year - 1900 /* 100-127, the fielded convention */
	case dt.Year >= 2028 && dt.Year <= 2039:
		raw_year = dt.Year - 2000 /* 28-39 */
	default:
		return 0
	}
	var date = uint32(raw_year)<<9 | uint32(dt.Month)<<5 | uint32(dt.Day)
	var tm = uint32(dt.Hour)<<8 | uint32(dt.Minute)
	return tm<<16 | date
}

/*-------------------------------------------------------------
 *
 * Name:	FromPascal / ToPascal
 *
 * Purpose:	Apple Pascal 16-bit date: YYYYYYYDDDDDMMMM, no time
 *		of day.  Month zero means no date.  Year 100 is
 *		reserved and never emitted, which leaves 2000-2027
 *		unrepresentable.
 *
 *--------------------------------------------------------------*/

func FromPascal(when uint16) DateTime {
	var month = int(when & 0x0f)
	if month == 0 {
		return NoDateTime
	}
	return check_fields(DateTime{
		Kind:  DateLocal,
		Year:  prodos_year(int(when >> 9)),
		Month: month,
		Day:   int(when>>4) & 0x1f,
	})
}

func ToPascal(dt DateTime) uint16 {
	if dt.Kind != DateLocal {
		return 0
	}
	var raw_year int
	switch {
	case dt.Year >= 1940 && dt.Year <= 1999:
		raw_year = dt.Year - 1900
	case dt.Year >= 2028 && dt.Year <= 2039:
		raw_year = dt.Year - 2000
	default:
		return 0
	}
	return uint16(raw_year)<<9 | uint16(dt.Day)<<4 | uint16(dt.Month)
}

/*-------------------------------------------------------------
 *
 * Name:	FromHFS / ToHFS
 *
 * Purpose:	HFS 32-bit unsigned seconds since 1904-01-01,
 *		local time.  See the header comment for why the
 *		conversion goes through UTC.
 *
 *--------------------------------------------------------------*/

/* Seconds from 1904-01-01 to 1970-01-01 (24107 days). */
const hfs_epoch_delta = 2082844800

func FromHFS(when uint32) DateTime {
	if when == 0 {
		return NoDateTime
	}
	var t = time.Unix(int64(when)-hfs_epoch_delta, 0).UTC()
	return DateTime{
		Kind:   DateLocal,
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

func ToHFS(dt DateTime) uint32 {
	if dt.Kind != DateLocal {
		return 0
	}
	var unix = dt.Time(time.UTC).Unix() + hfs_epoch_delta
	if unix <= 0 || unix > 0xffffffff {
		return 0
	}
	return uint32(unix)
}

/*-------------------------------------------------------------
 *
 * Name:	FromIIgs / ToIIgs
 *
 * Purpose:	Apple IIgs Toolbox ReadTimeHex layout: eight bytes of
 *		second, minute, hour, year-1900, day-1, month-1,
 *		reserved, weekday (1=Sunday).  All zero means no
 *		date.  Stored years below 40 are shifted up a century
 *		on decode, so 1900-1939 can't come back out; the
 *		raw byte covers 1900-2155.
 *
 *--------------------------------------------------------------*/

func FromIIgs(buf []byte) DateTime {
	Assert(len(buf) == 8)
	var all_zero = true
	for _, b := range buf {
		if b != 0 {
			all_zero = false
			break
		}
	}
	if all_zero {
		return NoDateTime
	}
	var year = 1900 + int(buf[3])
	if int(buf[3]) < 40 {
		year += 100
	}
	return check_fields(DateTime{
		Kind:   DateLocal,
		Year:   year,
		Month:  int(buf[5]) + 1,
		Day:    int(buf[4]) + 1,
		Hour:   int(buf[2]),
		Minute: int(buf[1]),
		Second: int(buf[0]),
	})
}

func ToIIgs(dt DateTime) [8]byte {
	var out [8]byte
	if dt.Kind != DateLocal {
		return out
	}
	var raw_year int
	switch {
	case dt.Year >= 2000 && dt.Year <= 2039:
		raw_year = dt.Year - 2000
	case dt.Year >= 1940 && dt.Year <= 1999:
		raw_year = dt.Year - 1900
	case dt.Year >= 2040 && dt.Year <= 2155:
		raw_year = dt.Year - 1900
	default:
		return out
	}
	out[0] = byte(dt.Second)
	out[1] = byte(dt.Minute)
	out[2] = byte(dt.Hour)
	out[3] = byte(raw_year)
	out[4] = byte(dt.Day - 1)
	out[5] = byte(dt.Month - 1)
	out[6] = 0
	out[7] = byte(dt.Time(time.UTC).Weekday()) + 1
	return out
}

/*-------------------------------------------------------------
 *
 * Name:	FromMSDOS / ToMSDOS
 *
 * Purpose:	MS-DOS directory-entry date and time words.  Date is
 *		YYYYYYYMMMMDDDDD with year origin 1980; time is
 *		hhhhhmmmmmmsssss with two-second resolution.  Both
 *		words zero means no date.
 *
 *--------------------------------------------------------------*/

func FromMSDOS(date uint16, tm uint16) DateTime {
	if date == 0 && tm == 0 {
		return NoDateTime
	}
	return check_fields(DateTime{
		Kind:   DateLocal,
		Year:   1980 + int(date>>9),
		Month:  int(date>>5) & 0x0f,
		Day:    int(date) & 0x1f,
		Hour:   int(tm >> 11),
		Minute: int(tm>>5) & 0x3f,
		Second: int(tm&0x1f) * 2,
	})
}

func ToMSDOS(dt DateTime) (uint16, uint16) {
	if dt.Kind != DateLocal || dt.Year < 1980 || dt.Year > 2107 {
		return 0, 0
	}
	var date = uint16(dt.Year-1980)<<9 | uint16(dt.Month)<<5 | uint16(dt.Day)
	var tm = uint16(dt.Hour)<<11 | uint16(dt.Minute)<<5 | uint16(dt.Second/2)
	return date, tm
}

/*-------------------------------------------------------------
 *
 * Name:	FromUnix32 / ToUnix32
 *
 * Purpose:	32-bit signed seconds since 1970-01-01 UTC, broken
 *		down in the host's local zone.  INT32_MIN is reserved
 *		as the "no date" value.
 *
 *--------------------------------------------------------------*/

const unix32_no_date = -0x80000000

func FromUnix32(when int32) DateTime {
	if when == unix32_no_date {
		return NoDateTime
	}
	var t = time.Unix(int64(when), 0).Local()
	return DateTime{
		Kind:   DateLocal,
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

func ToUnix32(dt DateTime) int32 {
	if dt.Kind != DateLocal {
		return unix32_no_date
	}
	var unix = dt.Time(time.Local).Unix()
	if unix < -0x7fffffff || unix > 0x7fffffff {
		return unix32_no_date
	}
	return int32(unix)
}
