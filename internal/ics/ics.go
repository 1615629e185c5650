// Package ics renders an installment schedule as an RFC 5545 iCalendar
// document: one VEVENT per installment, each carrying an explicit TZID and
// a display VALARM at 09:00 local time the day before the payment.
package ics

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/installo/bnpl-planner/internal/models"
	"github.com/installo/bnpl-planner/internal/planerr"
)

const (
	prodID = "-//installo//bnpl-planner//EN"

	// eventHour is the local hour payments are scheduled at in the
	// calendar. Providers debit at arbitrary times; a fixed morning slot
	// keeps the event visible at the top of the day.
	eventHour = 9
	// alarmHour is the local hour of the day-before reminder.
	alarmHour = 9
)

// event is one calendar entry derived from an installment. It is the
// shared source for both the iCalendar and the xCal renderings.
type event struct {
	uid         string
	summary     string
	description string
	start       time.Time // event start in the plan timezone
	end         time.Time
	alarm       time.Time // absolute reminder instant, converted to UTC on output
	tzid        string
}

// Generate renders the full iCalendar document. now stamps DTSTAMP and
// must be injected by the caller so repeated generation is reproducible.
// An unknown timezone aborts the whole document: partial calendars are
// never emitted.
func Generate(items []models.Installment, tz string, now time.Time) ([]byte, error) {
	events, err := buildEvents(items, tz)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+prodID)
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "METHOD:PUBLISH")
	stamp := now.UTC().Format("20060102T150405Z")
	for _, ev := range events {
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+ev.uid)
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, fmt.Sprintf("DTSTART;TZID=%s:%s", ev.tzid, ev.start.Format("20060102T150405")))
		writeLine(&b, fmt.Sprintf("DTEND;TZID=%s:%s", ev.tzid, ev.end.Format("20060102T150405")))
		writeLine(&b, "SUMMARY:"+escapeText(ev.summary))
		writeLine(&b, "DESCRIPTION:"+escapeText(ev.description))
		writeLine(&b, "BEGIN:VALARM")
		writeLine(&b, "ACTION:DISPLAY")
		writeLine(&b, "DESCRIPTION:"+escapeText(ev.summary))
		// Absolute trigger: RFC 5545 requires DATE-TIME triggers in UTC.
		writeLine(&b, "TRIGGER;VALUE=DATE-TIME:"+ev.alarm.UTC().Format("20060102T150405Z"))
		writeLine(&b, "END:VALARM")
		writeLine(&b, "END:VEVENT")
	}
	writeLine(&b, "END:VCALENDAR")
	return []byte(b.String()), nil
}

// EncodeBase64 wraps a rendered document for JSON transport.
func EncodeBase64(doc []byte) string {
	return base64.StdEncoding.EncodeToString(doc)
}

func buildEvents(items []models.Installment, tz string) ([]event, error) {
	if tz == "" {
		return nil, &planerr.InvalidTimezoneError{TZ: tz}
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, &planerr.InvalidTimezoneError{TZ: tz}
	}

	events := make([]event, 0, len(items))
	for _, it := range items {
		due, err := time.ParseInLocation("2006-01-02", it.DueDate, loc)
		if err != nil {
			return nil, fmt.Errorf("installment %s: bad due date %q: %w", it.Ref(), it.DueDate, err)
		}
		start := time.Date(due.Year(), due.Month(), due.Day(), eventHour, 0, 0, 0, loc)
		alarmDay := due.AddDate(0, 0, -1)
		events = append(events, event{
			uid:         eventUID(it),
			summary:     fmt.Sprintf("%s payment #%d: %s %s", it.Provider, it.InstallmentNumber, it.Amount.StringFixed(2), it.Currency),
			description: eventDescription(it),
			start:       start,
			end:         start.Add(30 * time.Minute),
			alarm:       time.Date(alarmDay.Year(), alarmDay.Month(), alarmDay.Day(), alarmHour, 0, 0, 0, loc),
			tzid:        tz,
		})
	}
	return events, nil
}

// eventUID derives a stable UID from the installment's identifying content
// so re-exports of the same plan dedupe in calendar clients.
func eventUID(it models.Installment) string {
	h := sha256.Sum256([]byte(strings.Join([]string{
		it.Provider,
		fmt.Sprintf("%d", it.InstallmentNumber),
		it.DueDate,
		it.Amount.String(),
		it.Currency,
	}, "|")))
	return hex.EncodeToString(h[:8]) + "@bnpl-planner"
}

func eventDescription(it models.Installment) string {
	var parts []string
	if it.Autopay {
		parts = append(parts, "Charged automatically.")
	} else {
		parts = append(parts, "Manual payment required.")
	}
	if it.LateFee.IsPositive() {
		parts = append(parts, fmt.Sprintf("Late fee if missed: %s %s.", it.LateFee.StringFixed(2), it.Currency))
	}
	return strings.Join(parts, " ")
}

// writeLine appends one content line, folded at 75 octets per RFC 5545
// §3.1 and terminated with CRLF.
func writeLine(b *strings.Builder, line string) {
	const limit = 75
	max := limit
	for len(line) > max {
		cut := max
		// Never split a UTF-8 sequence.
		for cut > 0 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// The fold space occupies one octet of every continuation line.
		max = limit - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}

// escapeText escapes TEXT values per RFC 5545 §3.3.11.
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
