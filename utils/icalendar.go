package utils

import (
	"time"

	ics "github.com/arran4/golang-ical"
)

type CalendarEvent struct {
	UID            string
	Start          time.Time
	End            time.Time
	Summary        string
	Description    string
	Location       string
	URL            string
	OrganizerName  string
	OrganizerEmail string
	AttendeeName   string
	AttendeeEmail  string
}

// GenerateCalendarInvite renders a METHOD:REQUEST calendar for the event.
// The UID must stay constant per booking so a later cancellation supersedes
// this invite instead of creating a duplicate entry.
func GenerateCalendarInvite(event CalendarEvent) string {
	return buildCalendar(event, ics.MethodRequest)
}

// GenerateCalendarCancellation renders a METHOD:CANCEL calendar reusing the
// invite's UID so calendar clients retract the original event.
func GenerateCalendarCancellation(event CalendarEvent) string {
	return buildCalendar(event, ics.MethodCancel)
}

func buildCalendar(event CalendarEvent, method ics.Method) string {
	cal := ics.NewCalendar()
	cal.SetMethod(method)
	cal.SetProductId("-//SessionBooking//Bookings//EN")

	e := cal.AddEvent(event.UID)
	e.SetDtStampTime(time.Now())
	e.SetStartAt(event.Start)
	e.SetEndAt(event.End)
	e.SetSummary(event.Summary)
	if event.Description != "" {
		e.SetDescription(event.Description)
	}
	if event.Location != "" {
		e.SetLocation(event.Location)
	}
	if event.URL != "" {
		e.SetURL(event.URL)
	}
	e.SetOrganizer("mailto:"+event.OrganizerEmail, ics.WithCN(event.OrganizerName))
	e.AddAttendee(event.AttendeeEmail,
		ics.WithCN(event.AttendeeName),
		ics.CalendarUserTypeIndividual,
		ics.ParticipationStatusNeedsAction,
		ics.ParticipationRoleReqParticipant,
		ics.WithRSVP(true),
	)

	if method == ics.MethodCancel {
		e.SetStatus(ics.ObjectStatusCancelled)
		e.SetSequence(1)
	}

	return cal.Serialize()
}
