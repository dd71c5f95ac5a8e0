// Package dateutil parses, formats, and detects transaction date strings.
//
// Detection tries a fixed priority order: ISO (Y-M-D), US slash (M/D/Y),
// US slash with a two-digit year, day-first dot (D.M.Y), then ISO slash
// (Y/M/D). Genuinely ambiguous strings such as "03/04/2023" therefore
// resolve month-first. Patterns use strftime notation because that is what
// CSV template files carry; plain Go layouts are accepted too.
package dateutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FormatError reports an empty or unparseable date string.
type FormatError struct {
	Value  string
	Format string // the strict format that failed, empty for auto-detection
}

func (e *FormatError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("date %q does not match format %q", e.Value, e.Format)
	}
	if e.Value == "" {
		return "empty date string"
	}
	return fmt.Sprintf("unrecognized date %q", e.Value)
}

// FormatISO is the default output pattern.
const FormatISO = "%Y-%m-%d"

// FormatUS is the QIF output pattern (zero-padded MM/DD/YYYY).
const FormatUS = "%m/%d/%Y"

// detectionOrder is the fixed priority order for auto-detection.
var detectionOrder = []string{
	"%Y-%m-%d", // ISO
	"%m/%d/%Y", // US slash
	"%m/%d/%y", // US slash, 2-digit year
	"%d.%m.%Y", // day-first dot
	"%Y/%m/%d", // ISO slash
}

// strftime directive → Go layout fragment.
var layoutTable = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'b': "Jan",
	'B': "January",
	'H': "15",
	'M': "04",
	'S': "05",
	'%': "%",
}

// Layout converts a strftime-style pattern to a Go time layout. Patterns
// without '%' are assumed to already be Go layouts and returned unchanged.
func Layout(format string) string {
	if !strings.ContainsRune(format, '%') {
		return format
	}
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] == '%' && i+1 < len(format) {
			if frag, ok := layoutTable[format[i+1]]; ok {
				b.WriteString(frag)
				i++
				continue
			}
		}
		b.WriteByte(format[i])
	}
	return b.String()
}

// Parse converts a date string to a time. With a non-empty format the text
// must match it exactly; otherwise the detection order is tried. A trailing
// time component is accepted and discarded either way, as is Quicken's
// apostrophe year separator ("1/5'24").
func Parse(text, format string) (time.Time, error) {
	s := normalize(text)
	if s == "" {
		return time.Time{}, &FormatError{Value: text}
	}

	if format != "" {
		t, err := time.Parse(Layout(format), s)
		if err != nil {
			return time.Time{}, &FormatError{Value: text, Format: format}
		}
		return midnight(t), nil
	}

	for _, pattern := range detectionOrder {
		if t, err := time.Parse(Layout(pattern), s); err == nil {
			return midnight(t), nil
		}
	}
	return time.Time{}, &FormatError{Value: text}
}

// DetectFormat returns the first pattern in the detection order that matches
// the text, or "" if none does.
func DetectFormat(text string) string {
	s := normalize(text)
	if s == "" {
		return ""
	}
	for _, pattern := range detectionOrder {
		if _, err := time.Parse(Layout(pattern), s); err == nil {
			return pattern
		}
	}
	return ""
}

// Format renders a date using the given pattern, or FormatUS if empty.
func Format(t time.Time, format string) string {
	if format == "" {
		format = FormatUS
	}
	return t.Format(Layout(format))
}

// timeSuffixRe matches a trailing clock-time token ("14:30", "2:30:45",
// "02:30 PM"). Only such tokens are dropped, so spaced month-name dates like
// "Jan 5, 2023" survive intact.
var timeSuffixRe = regexp.MustCompile(`\s+\d{1,2}:\d{2}(:\d{2}(\.\d+)?)?(\s*[APap][Mm])?$`)

// normalize trims the text, replaces Quicken's apostrophe year separator,
// and drops a trailing time component.
func normalize(text string) string {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, "'", "/")
	s = timeSuffixRe.ReplaceAllString(s, "")
	// ISO timestamps carry the time after a 'T' at offset 10.
	if len(s) > 10 && s[10] == 'T' {
		s = s[:10]
	}
	return s
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
