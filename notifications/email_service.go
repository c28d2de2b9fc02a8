package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/anavidal/session_booking/configs"
)

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	AdminEmail  string
}

var EmailClient *BrevoService

type Attachment struct {
	Name    string `json:"name"`
	Content string `json:"content"` // base64 encoded
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
	Attachment  []Attachment        `json:"attachment,omitempty"`
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")
	adminEmail := config.Config("ADMIN_EMAIL")

	if senderEmail == "" {
		senderEmail = "noreply@sessionbooking.app"
	}
	if senderName == "" {
		senderName = "Session Booking"
	}

	EmailClient = &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
		AdminEmail:  adminEmail,
	}

	if EmailClient.mockMode() {
		log.Println("⚠️ Email service running in mock mode (no API key configured).")
		return
	}
	log.Println("✅ Email service initialized successfully.")
}

func (s *BrevoService) mockMode() bool {
	return s.APIKey == "" || strings.Contains(s.APIKey, "mock")
}

func (s *BrevoService) send(toEmail, toName, subject, htmlContent string, attachments []Attachment) error {
	url := "https://api.brevo.com/v3/smtp/email"

	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	// Every customer email is mirrored to the admin address, except when the
	// admin address already is the recipient.
	recipients := []map[string]string{{"email": toEmail, "name": recipientName}}
	if s.AdminEmail != "" && toEmail != s.AdminEmail {
		recipients = append(recipients, map[string]string{"email": s.AdminEmail, "name": "Admin"})
	}

	if s.mockMode() {
		log.Printf("📧 [MOCK EMAIL] To: %s | Subject: %s", toEmail, subject)
		for _, a := range attachments {
			log.Printf("   Attachment: %s", a.Name)
		}
		return nil
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          recipients,
		Subject:     subject,
		HTMLContent: htmlContent,
		Attachment:  attachments,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Printf("Brevo API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("failed to send email via Brevo: %s", string(bodyBytes))
	}

	return nil
}

func SendEmail(toName, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	if EmailClient == nil {
		log.Println("Email client not initialized, skipping email send.")
		return fmt.Errorf("email client not initialized")
	}

	err := EmailClient.send(toEmail, toName, subject, htmlContent, attachments)
	if err != nil {
		log.Printf("🔥 Failed to send email to %s: %v", toEmail, err)
		return err
	}

	log.Printf("✅ Email sent successfully to %s", toEmail)
	return nil
}

// IsMockMode reports whether emails are logged locally instead of delivered.
func IsMockMode() bool {
	return EmailClient == nil || EmailClient.mockMode()
}
