package notifications

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	config "github.com/anavidal/session_booking/configs"
	"github.com/anavidal/session_booking/models"
	"github.com/anavidal/session_booking/utils"
)

// Fixed address a human translator coordinator reads. Sessions booked in a
// language outside the native set are announced here.
const translatorDeskEmail = "translators@sessionbooking.app"

var dateLayouts = map[string]string{
	"pt": "02/01/2006",
	"en": "2006-01-02",
	"fr": "02/01/2006",
	"de": "02.01.2006",
}

func localizedDate(booking *models.Booking) string {
	layout, ok := dateLayouts[booking.Language]
	if !ok {
		layout = dateLayouts[defaultLanguage]
	}
	return booking.AvailabilitySlot.Date.Format(layout)
}

var meetingBlocks = map[string]struct{ link, pending string }{
	"pt": {`Link da reunião: <a href="{{link}}">{{link}}</a>`, "O link da reunião será enviado antes da sessão."},
	"en": {`Meeting link: <a href="{{link}}">{{link}}</a>`, "The meeting link will be sent before the session."},
	"fr": {`Lien de la réunion : <a href="{{link}}">{{link}}</a>`, "Le lien de la réunion sera envoyé avant la séance."},
	"de": {`Meeting-Link: <a href="{{link}}">{{link}}</a>`, "Der Meeting-Link wird vor der Sitzung gesendet."},
}

func meetingBlock(language, meetLink string, online bool) string {
	block, ok := meetingBlocks[language]
	if !ok {
		block = meetingBlocks[defaultLanguage]
	}
	if !online {
		return ""
	}
	if meetLink == "" {
		return block.pending
	}
	return strings.ReplaceAll(block.link, "{{link}}", meetLink)
}

var refundBlocks = map[string]struct{ full, none string }{
	"pt": {"Um reembolso total de {{amount}} será processado.", "Esta reserva não é elegível para reembolso."},
	"en": {"A full refund of {{amount}} will be processed.", "This booking is not eligible for a refund."},
	"fr": {"Un remboursement intégral de {{amount}} sera effectué.", "Cette réservation n'est pas éligible à un remboursement."},
	"de": {"Eine vollständige Rückerstattung von {{amount}} wird veranlasst.", "Diese Buchung ist nicht erstattungsfähig."},
}

func refundBlock(language, refundStatus string, amount int64, currency string) string {
	block, ok := refundBlocks[language]
	if !ok {
		block = refundBlocks[defaultLanguage]
	}
	if refundStatus == "FULL_REFUND" {
		return strings.ReplaceAll(block.full, "{{amount}}", FormatAmount(amount, currency))
	}
	return block.none
}

// FormatAmount renders minor currency units for display, e.g. 4999 -> "49.99 EUR".
func FormatAmount(cents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100, currency)
}

func bookingReference(booking *models.Booking) string {
	return strings.ToUpper(booking.ID.String()[:8])
}

func bookingVars(booking *models.Booking, meetLink string) map[string]string {
	return map[string]string{
		"firstName":    booking.FirstName,
		"lastName":     booking.LastName,
		"date":         localizedDate(booking),
		"time":         booking.AvailabilitySlot.Time,
		"duration":     strconv.Itoa(booking.AvailabilitySlot.Duration),
		"type":         booking.Type,
		"reference":    bookingReference(booking),
		"link":         meetLink,
		"cancelUrl":    config.Config("BASE_URL") + "/booking/cancel/" + booking.ID.String(),
		"meetingBlock": meetingBlock(booking.Language, meetLink, booking.Type == "ONLINE"),
	}
}

func calendarEventFor(booking *models.Booking, meetLink string) utils.CalendarEvent {
	location := ""
	if booking.AvailabilitySlot.Location != nil {
		loc := booking.AvailabilitySlot.Location
		location = fmt.Sprintf("%s, %s, %s", loc.Name, loc.Address, loc.City)
	} else if meetLink != "" {
		location = meetLink
	}

	organizerName := "Session Booking"
	organizerEmail := "noreply@sessionbooking.app"
	if EmailClient != nil {
		organizerName = EmailClient.SenderName
		organizerEmail = EmailClient.SenderEmail
	}

	return utils.CalendarEvent{
		UID:            booking.ID.String(),
		Start:          booking.AvailabilitySlot.StartTime(),
		End:            booking.AvailabilitySlot.EndTime(),
		Summary:        fmt.Sprintf("Session — %s %s", booking.FirstName, booking.LastName),
		Description:    "Booked session",
		Location:       location,
		URL:            meetLink,
		OrganizerName:  organizerName,
		OrganizerEmail: organizerEmail,
		AttendeeName:   booking.FirstName + " " + booking.LastName,
		AttendeeEmail:  booking.Email,
	}
}

func icsAttachment(name, content string) Attachment {
	return Attachment{
		Name:    name,
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
	}
}

// SendBookingConfirmation emails the customer their confirmed session with a
// calendar invite attached. The invite UID equals the booking id so a later
// cancellation can supersede it.
func SendBookingConfirmation(booking *models.Booking, meetLink string) error {
	subject, html, ok := RenderTemplate("BOOKING_CONFIRMATION", booking.Language, bookingVars(booking, meetLink))
	if !ok {
		return fmt.Errorf("no confirmation template available")
	}

	invite := utils.GenerateCalendarInvite(calendarEventFor(booking, meetLink))
	return SendEmail(
		booking.FirstName+" "+booking.LastName,
		booking.Email,
		subject,
		html,
		icsAttachment("invite.ics", invite),
	)
}

// SendBookingCancellation emails the customer that their session was cancelled,
// attaching a calendar cancellation that retracts the original invite.
func SendBookingCancellation(booking *models.Booking, refundStatus string) error {
	reason := ""
	if booking.CancellationReason != nil {
		reason = *booking.CancellationReason
	}
	refundAmount := int64(0)
	if booking.Payment != nil {
		refundAmount = booking.Payment.Amount
	}

	meetLink := ""
	if booking.GoogleMeetEvent != nil {
		meetLink = booking.GoogleMeetEvent.MeetLink
	}

	vars := bookingVars(booking, meetLink)
	vars["reason"] = reason
	vars["refundBlock"] = refundBlock(booking.Language, refundStatus, refundAmount, booking.Currency)

	subject, html, ok := RenderTemplate("BOOKING_CANCELLATION", booking.Language, vars)
	if !ok {
		return fmt.Errorf("no cancellation template available")
	}

	cancellation := utils.GenerateCalendarCancellation(calendarEventFor(booking, meetLink))
	return SendEmail(
		booking.FirstName+" "+booking.LastName,
		booking.Email,
		subject,
		html,
		icsAttachment("cancellation.ics", cancellation),
	)
}

// SendTranslatorNotice announces a booking in a non-native language to the
// translation desk so a human translator can be arranged.
func SendTranslatorNotice(booking *models.Booking, meetLink string) error {
	lang := strings.ToUpper(booking.Language)
	link := meetLink
	if link == "" {
		link = "N/A"
	}
	html := fmt.Sprintf(
		`<h1>New booking in %s</h1>
<p>Client: %s %s</p>
<p>Date: %s</p>
<p>Time: %s</p>
<p>Link: %s</p>`,
		lang, booking.FirstName, booking.LastName,
		localizedDate(booking), booking.AvailabilitySlot.Time, link,
	)
	return SendEmail(
		"Translator Desk",
		translatorDeskEmail,
		fmt.Sprintf("[TRANSLATION] New session in %s", lang),
		html,
	)
}

// SendSessionReminder emails the customer ahead of their session.
func SendSessionReminder(booking *models.Booking, meetLink string) error {
	subject, html, ok := RenderTemplate("SESSION_REMINDER", booking.Language, bookingVars(booking, meetLink))
	if !ok {
		return fmt.Errorf("no reminder template available")
	}
	return SendEmail(booking.FirstName+" "+booking.LastName, booking.Email, subject, html)
}
