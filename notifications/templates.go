package notifications

import (
	"strings"

	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/models"
)

// Built-in defaults used whenever no active override is stored for a template
// name. Placeholders use {{name}} syntax and are substituted on render, both
// for defaults and stored overrides.

type localizedTemplate struct {
	Subject map[string]string
	HTML    map[string]string
}

const defaultLanguage = "pt"

var builtinTemplates = map[string]localizedTemplate{
	"BOOKING_CONFIRMATION": {
		Subject: map[string]string{
			"pt": "Reserva Confirmada: {{date}} às {{time}}",
			"en": "Booking Confirmed: {{date}} at {{time}}",
			"fr": "Réservation confirmée : {{date}} à {{time}}",
			"de": "Buchung bestätigt: {{date}} um {{time}}",
		},
		HTML: map[string]string{
			"pt": `<h1>Reserva Confirmada</h1>
<p>Olá {{firstName}},</p>
<p>A sua sessão foi confirmada.</p>
<p><b>Data:</b> {{date}}<br/><b>Horário:</b> {{time}}<br/><b>Duração:</b> {{duration}} minutos<br/><b>Tipo:</b> {{type}}</p>
<p>{{meetingBlock}}</p>
<p>Referência: {{reference}}</p>
<p>Para cancelar: <a href="{{cancelUrl}}">{{cancelUrl}}</a></p>`,
			"en": `<h1>Booking Confirmed</h1>
<p>Hello {{firstName}},</p>
<p>Your session has been confirmed.</p>
<p><b>Date:</b> {{date}}<br/><b>Time:</b> {{time}}<br/><b>Duration:</b> {{duration}} minutes<br/><b>Type:</b> {{type}}</p>
<p>{{meetingBlock}}</p>
<p>Reference: {{reference}}</p>
<p>To cancel: <a href="{{cancelUrl}}">{{cancelUrl}}</a></p>`,
			"fr": `<h1>Réservation confirmée</h1>
<p>Bonjour {{firstName}},</p>
<p>Votre séance a été confirmée.</p>
<p><b>Date :</b> {{date}}<br/><b>Heure :</b> {{time}}<br/><b>Durée :</b> {{duration}} minutes<br/><b>Type :</b> {{type}}</p>
<p>{{meetingBlock}}</p>
<p>Référence : {{reference}}</p>
<p>Pour annuler : <a href="{{cancelUrl}}">{{cancelUrl}}</a></p>`,
			"de": `<h1>Buchung bestätigt</h1>
<p>Hallo {{firstName}},</p>
<p>Ihre Sitzung wurde bestätigt.</p>
<p><b>Datum:</b> {{date}}<br/><b>Uhrzeit:</b> {{time}}<br/><b>Dauer:</b> {{duration}} Minuten<br/><b>Art:</b> {{type}}</p>
<p>{{meetingBlock}}</p>
<p>Referenz: {{reference}}</p>
<p>Zum Stornieren: <a href="{{cancelUrl}}">{{cancelUrl}}</a></p>`,
		},
	},
	"BOOKING_CANCELLATION": {
		Subject: map[string]string{
			"pt": "Reserva Cancelada: {{date}}",
			"en": "Booking Cancelled: {{date}}",
			"fr": "Réservation annulée : {{date}}",
			"de": "Buchung storniert: {{date}}",
		},
		HTML: map[string]string{
			"pt": `<h1>Reserva Cancelada</h1>
<p>Olá {{firstName}},</p>
<p>A sua sessão de {{date}} às {{time}} foi cancelada.</p>
<p><b>Motivo:</b> {{reason}}</p>
<p>{{refundBlock}}</p>
<p>Referência: {{reference}}</p>`,
			"en": `<h1>Booking Cancelled</h1>
<p>Hello {{firstName}},</p>
<p>Your session on {{date}} at {{time}} has been cancelled.</p>
<p><b>Reason:</b> {{reason}}</p>
<p>{{refundBlock}}</p>
<p>Reference: {{reference}}</p>`,
			"fr": `<h1>Réservation annulée</h1>
<p>Bonjour {{firstName}},</p>
<p>Votre séance du {{date}} à {{time}} a été annulée.</p>
<p><b>Motif :</b> {{reason}}</p>
<p>{{refundBlock}}</p>
<p>Référence : {{reference}}</p>`,
			"de": `<h1>Buchung storniert</h1>
<p>Hallo {{firstName}},</p>
<p>Ihre Sitzung am {{date}} um {{time}} wurde storniert.</p>
<p><b>Grund:</b> {{reason}}</p>
<p>{{refundBlock}}</p>
<p>Referenz: {{reference}}</p>`,
		},
	},
	"SESSION_REMINDER": {
		Subject: map[string]string{
			"pt": "Lembrete: a sua sessão é amanhã",
			"en": "Reminder: your session is tomorrow",
			"fr": "Rappel : votre séance est demain",
			"de": "Erinnerung: Ihre Sitzung ist morgen",
		},
		HTML: map[string]string{
			"pt": `<h1>Lembrete de Sessão</h1>
<p>Olá {{firstName}},</p>
<p>A sua sessão está marcada para {{date}} às {{time}}.</p>
<p>{{meetingBlock}}</p>`,
			"en": `<h1>Session Reminder</h1>
<p>Hello {{firstName}},</p>
<p>Your session is scheduled for {{date}} at {{time}}.</p>
<p>{{meetingBlock}}</p>`,
			"fr": `<h1>Rappel de séance</h1>
<p>Bonjour {{firstName}},</p>
<p>Votre séance est prévue le {{date}} à {{time}}.</p>
<p>{{meetingBlock}}</p>`,
			"de": `<h1>Sitzungserinnerung</h1>
<p>Hallo {{firstName}},</p>
<p>Ihre Sitzung ist für {{date}} um {{time}} geplant.</p>
<p>{{meetingBlock}}</p>`,
		},
	},
}

func ApplyVariables(text string, vars map[string]string) string {
	for key, value := range vars {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}

func defaultTemplate(name, language string) (string, string, bool) {
	tmpl, ok := builtinTemplates[name]
	if !ok {
		return "", "", false
	}
	subject, ok := tmpl.Subject[language]
	if !ok {
		subject = tmpl.Subject[defaultLanguage]
	}
	html, ok := tmpl.HTML[language]
	if !ok {
		html = tmpl.HTML[defaultLanguage]
	}
	return subject, html, true
}

// RenderTemplate resolves a named template (stored override first, localized
// built-in default second) and substitutes the variables into subject and body.
func RenderTemplate(name, language string, vars map[string]string) (string, string, bool) {
	subject, html, ok := defaultTemplate(name, language)

	if database.DB != nil {
		var stored models.EmailTemplate
		if err := database.DB.Where("name = ? AND is_active = ?", name, true).First(&stored).Error; err == nil {
			subject, html, ok = stored.Subject, stored.HTMLContent, true
		}
	}
	if !ok {
		return "", "", false
	}

	return ApplyVariables(subject, vars), ApplyVariables(html, vars), true
}

// DefaultTemplates lists the built-in set in its default language, for the
// admin template editor to merge stored overrides over.
func DefaultTemplates() []models.EmailTemplate {
	names := []string{"BOOKING_CONFIRMATION", "BOOKING_CANCELLATION", "SESSION_REMINDER"}
	templates := make([]models.EmailTemplate, 0, len(names))
	for _, name := range names {
		tmpl := builtinTemplates[name]
		templates = append(templates, models.EmailTemplate{
			Name:        name,
			Subject:     tmpl.Subject[defaultLanguage],
			HTMLContent: tmpl.HTML[defaultLanguage],
			IsActive:    true,
		})
	}
	return templates
}

// TemplateNames returns the names of the built-in templates.
func TemplateNames() []string {
	return []string{"BOOKING_CONFIRMATION", "BOOKING_CANCELLATION", "SESSION_REMINDER"}
}
