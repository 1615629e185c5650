package ics

import (
	"time"

	"github.com/beevik/etree"

	"github.com/installo/bnpl-planner/internal/models"
)

// xcalNamespace is the XML namespace defined by RFC 6321.
const xcalNamespace = "urn:ietf:params:xml:ns:icalendar-2.0"

// GenerateXCal renders the same schedule as an xCalendar (RFC 6321) XML
// document for clients that consume XML feeds instead of raw iCalendar.
func GenerateXCal(items []models.Installment, tz string, now time.Time) (string, error) {
	events, err := buildEvents(items, tz)
	if err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("icalendar")
	root.CreateAttr("xmlns", xcalNamespace)
	vcal := root.CreateElement("vcalendar")

	props := vcal.CreateElement("properties")
	addTextProp(props, "version", "2.0")
	addTextProp(props, "prodid", prodID)

	comps := vcal.CreateElement("components")
	stamp := now.UTC().Format("2006-01-02T15:04:05Z")
	for _, ev := range events {
		vevent := comps.CreateElement("vevent")
		p := vevent.CreateElement("properties")
		addTextProp(p, "uid", ev.uid)
		addProp(p, "dtstamp", "date-time", stamp)
		addDateTimeProp(p, "dtstart", ev.tzid, ev.start)
		addDateTimeProp(p, "dtend", ev.tzid, ev.end)
		addTextProp(p, "summary", ev.summary)
		addTextProp(p, "description", ev.description)

		valarm := vevent.CreateElement("components").CreateElement("valarm")
		ap := valarm.CreateElement("properties")
		addTextProp(ap, "action", "DISPLAY")
		addTextProp(ap, "description", ev.summary)
		addProp(ap, "trigger", "date-time", ev.alarm.UTC().Format("2006-01-02T15:04:05Z"))
	}

	doc.Indent(2)
	return doc.WriteToString()
}

func addTextProp(parent *etree.Element, name, value string) {
	addProp(parent, name, "text", value)
}

func addProp(parent *etree.Element, name, typ, value string) {
	parent.CreateElement(name).CreateElement(typ).SetText(value)
}

func addDateTimeProp(parent *etree.Element, name, tzid string, t time.Time) {
	el := parent.CreateElement(name)
	el.CreateElement("parameters").CreateElement("tzid").CreateElement("text").SetText(tzid)
	el.CreateElement("date-time").SetText(t.Format("2006-01-02T15:04:05"))
}
