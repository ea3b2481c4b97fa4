package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
)

// Extraction holds the per-axis results for one line. Either axis may be
// missing; the caller decides what counts as a usable candidate. Future
// dates are returned as-is: rejecting them is the line parser's job.
type Extraction struct {
	Date        *time.Time
	AmountMinor *int64
}

var (
	reNumericWithYear = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	reNumeric         = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})`)
	reISO             = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	reMonthDay        = regexp.MustCompile(`(?i)\b([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s*(\d{4}))?`)
	reWeekdayMonthDay = regexp.MustCompile(`(?i)\b(sun|mon|tue|wed|thu|fri|sat)[a-z]*,?\s+([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s*(\d{4}))?`)
	reToday           = regexp.MustCompile(`(?i)\btoday\b`)
	reYesterday       = regexp.MustCompile(`(?i)\byesterday\b`)
	reLastWeekday     = regexp.MustCompile(`(?i)\blast\s+(sun|mon|tue|wed|thu|fri|sat)[a-z]*\b`)
	reAmount          = regexp.MustCompile(`\$?(\d+(?:\.\d{1,2})?)`)
)

var monthByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var monthFullName = map[string]string{
	"jan": "january", "feb": "february", "mar": "march",
	"apr": "april", "may": "may", "jun": "june",
	"jul": "july", "aug": "august", "sep": "september",
	"oct": "october", "nov": "november", "dec": "december",
}

var weekdayByPrefix = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// Extract recognizes a calendar date and a monetary amount in one line of
// free text. Date patterns are tried in a fixed order and the first pattern
// that yields a valid date anywhere in the line wins. The matched date text
// is excluded from the amount scan so date digits are never mistaken for
// money.
func Extract(line string, now time.Time) Extraction {
	var out Extraction

	date, span := extractDate(line, now)
	rest := line
	if span != nil {
		out.Date = &date
		rest = line[:span[0]] + " " + line[span[1]:]
	}

	if m := reAmount.FindStringSubmatch(rest); m != nil {
		major, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			minor := tipdomain.ToMinorUnits(major)
			out.AmountMinor = &minor
		}
	}

	return out
}

func extractDate(line string, now time.Time) (time.Time, []int) {
	if date, span, ok := matchNumericWithYear(line); ok {
		return date, span
	}
	if date, span, ok := matchNumeric(line, now); ok {
		return date, span
	}
	if date, span, ok := matchISO(line); ok {
		return date, span
	}
	if date, span, ok := matchMonthDay(line, now); ok {
		return date, span
	}
	if date, span, ok := matchWeekdayMonthDay(line, now); ok {
		return date, span
	}
	if date, span, ok := matchRelative(line, now); ok {
		return date, span
	}
	return time.Time{}, nil
}

func matchNumericWithYear(line string) (time.Time, []int, bool) {
	for _, idx := range reNumericWithYear.FindAllStringSubmatchIndex(line, -1) {
		if !standaloneDigits(line, idx[0], idx[1]) {
			continue
		}
		month := atoi(line[idx[2]:idx[3]])
		day := atoi(line[idx[4]:idx[5]])
		year := atoi(line[idx[6]:idx[7]])
		if date, ok := makeDate(year, month, day); ok {
			return date, idx[0:2], true
		}
	}
	return time.Time{}, nil, false
}

func matchNumeric(line string, now time.Time) (time.Time, []int, bool) {
	for _, idx := range reNumeric.FindAllStringSubmatchIndex(line, -1) {
		if !standaloneDigits(line, idx[0], idx[1]) {
			continue
		}
		month := atoi(line[idx[2]:idx[3]])
		day := atoi(line[idx[4]:idx[5]])
		if date, ok := makeDate(now.Year(), month, day); ok {
			return date, idx[0:2], true
		}
	}
	return time.Time{}, nil, false
}

func matchISO(line string) (time.Time, []int, bool) {
	for _, idx := range reISO.FindAllStringSubmatchIndex(line, -1) {
		if !standaloneDigits(line, idx[0], idx[1]) {
			continue
		}
		year := atoi(line[idx[2]:idx[3]])
		month := atoi(line[idx[4]:idx[5]])
		day := atoi(line[idx[6]:idx[7]])
		if date, ok := makeDate(year, month, day); ok {
			return date, idx[0:2], true
		}
	}
	return time.Time{}, nil, false
}

func matchMonthDay(line string, now time.Time) (time.Time, []int, bool) {
	for _, idx := range reMonthDay.FindAllStringSubmatchIndex(line, -1) {
		month, ok := resolveMonth(line[idx[2]:idx[3]])
		if !ok {
			continue
		}
		day := atoi(line[idx[4]:idx[5]])
		year := now.Year()
		if idx[6] >= 0 {
			year = atoi(line[idx[6]:idx[7]])
		}
		if date, ok := makeDate(year, int(month), day); ok {
			return date, idx[0:2], true
		}
	}
	return time.Time{}, nil, false
}

func matchWeekdayMonthDay(line string, now time.Time) (time.Time, []int, bool) {
	for _, idx := range reWeekdayMonthDay.FindAllStringSubmatchIndex(line, -1) {
		// The weekday token only shapes the pattern; date math uses month+day.
		month, ok := resolveMonth(line[idx[4]:idx[5]])
		if !ok {
			continue
		}
		day := atoi(line[idx[6]:idx[7]])
		year := now.Year()
		if idx[8] >= 0 {
			year = atoi(line[idx[8]:idx[9]])
		}
		if date, ok := makeDate(year, int(month), day); ok {
			return date, idx[0:2], true
		}
	}
	return time.Time{}, nil, false
}

func matchRelative(line string, now time.Time) (time.Time, []int, bool) {
	today := tipdomain.NormalizeDate(now)

	if idx := reToday.FindStringIndex(line); idx != nil {
		return today, idx, true
	}
	if idx := reYesterday.FindStringIndex(line); idx != nil {
		return today.AddDate(0, 0, -1), idx, true
	}
	if idx := reLastWeekday.FindStringSubmatchIndex(line); idx != nil {
		target := weekdayByPrefix[strings.ToLower(line[idx[2]:idx[3]])]
		delta := (int(now.Weekday()) - int(target) + 7) % 7
		if delta == 0 {
			// "last Monday" said on a Monday means a full week back, not today.
			delta = 7
		}
		return today.AddDate(0, 0, -delta), idx[0:2], true
	}
	return time.Time{}, nil, false
}

// resolveMonth maps a month token to its index by 3-letter prefix; longer
// tokens must stay consistent with the full English name ("janu" resolves,
// "janx" does not).
func resolveMonth(token string) (time.Month, bool) {
	token = strings.ToLower(token)
	if len(token) < 3 {
		return 0, false
	}
	prefix := token[:3]
	month, ok := monthByPrefix[prefix]
	if !ok {
		return 0, false
	}
	if !strings.HasPrefix(monthFullName[prefix], token) {
		return 0, false
	}
	return month, true
}

func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1000 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) {
		// Rolled over (e.g. Feb 30); not a real calendar day.
		return time.Time{}, false
	}
	return date, true
}

// standaloneDigits rejects matches embedded in a longer digit/separator run,
// so "03-05" inside "2024-03-05" is not read as a month/day pair.
func standaloneDigits(line string, start, end int) bool {
	if start > 0 && isDateChar(line[start-1]) {
		return false
	}
	if end < len(line) && isDateChar(line[end]) {
		return false
	}
	return true
}

func isDateChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '/' || c == '-'
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
