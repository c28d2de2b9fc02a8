package meetings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	config "github.com/anavidal/session_booking/configs"
	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/models"
)

const (
	googleAuthURL    = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL   = "https://oauth2.googleapis.com/token"
	calendarEventURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"
	calendarScope    = "https://www.googleapis.com/auth/calendar.events"

	refreshTokenSettingKey = "GOOGLE_REFRESH_TOKEN"
)

type Meeting struct {
	EventID  string
	MeetLink string
}

var (
	accessToken       string
	accessTokenExpiry time.Time
	tokenMutex        sync.RWMutex
)

func redirectURI() string {
	return config.Config("BASE_URL") + "/api/v1/auth/google/callback"
}

// GenerateAuthURL builds the consent URL the admin visits to authorize
// calendar access. Offline access with forced consent so a refresh token is
// always issued.
func GenerateAuthURL() string {
	params := url.Values{}
	params.Set("client_id", config.Config("GOOGLE_CLIENT_ID"))
	params.Set("redirect_uri", redirectURI())
	params.Set("response_type", "code")
	params.Set("scope", calendarScope)
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")
	return googleAuthURL + "?" + params.Encode()
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ExchangeCode trades an OAuth authorization code for tokens and returns the
// refresh token to be persisted.
func ExchangeCode(code string) (string, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", config.Config("GOOGLE_CLIENT_ID"))
	form.Set("client_secret", config.Config("GOOGLE_CLIENT_SECRET"))
	form.Set("redirect_uri", redirectURI())
	form.Set("grant_type", "authorization_code")

	token, err := requestToken(form)
	if err != nil {
		return "", err
	}
	if token.RefreshToken == "" {
		return "", fmt.Errorf("google token exchange returned no refresh token")
	}
	return token.RefreshToken, nil
}

// StoredRefreshToken reads the refresh token the OAuth callback persisted.
func StoredRefreshToken() string {
	var setting models.SystemSetting
	if err := database.DB.Where("key = ?", refreshTokenSettingKey).First(&setting).Error; err != nil {
		return ""
	}
	return setting.Value
}

// IsMockMode reports whether meeting creation should be simulated locally.
func IsMockMode() bool {
	token := StoredRefreshToken()
	return token == "" || token == "mock"
}

func getAccessToken() (string, error) {
	tokenMutex.RLock()
	if accessToken != "" && time.Now().Before(accessTokenExpiry) {
		token := accessToken
		tokenMutex.RUnlock()
		return token, nil
	}
	tokenMutex.RUnlock()

	tokenMutex.Lock()
	defer tokenMutex.Unlock()

	if accessToken != "" && time.Now().Before(accessTokenExpiry) {
		return accessToken, nil
	}

	log.Println("Fetching new Google access token...")
	form := url.Values{}
	form.Set("refresh_token", StoredRefreshToken())
	form.Set("client_id", config.Config("GOOGLE_CLIENT_ID"))
	form.Set("client_secret", config.Config("GOOGLE_CLIENT_SECRET"))
	form.Set("grant_type", "refresh_token")

	token, err := requestToken(form)
	if err != nil {
		return "", err
	}

	accessToken = token.AccessToken
	accessTokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn-300) * time.Second)
	return accessToken, nil
}

func requestToken(form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequest("POST", googleTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google token API returned %s: %s", resp.Status, string(respBody))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, err
	}
	return &token, nil
}

type calendarEventResponse struct {
	ID          string `json:"id"`
	HangoutLink string `json:"hangoutLink"`
}

// CreateMeeting inserts a calendar event with an attached video conference and
// returns its join link. In mock mode a deterministic fake meeting is
// returned without touching the network.
func CreateMeeting(bookingID, title, description string, start time.Time, durationMinutes int, attendeeEmail string) (*Meeting, error) {
	if IsMockMode() {
		log.Println("⚠️ Mocking meeting creation (no valid Google credentials)")
		return &Meeting{
			EventID:  fmt.Sprintf("mock-event-%d", time.Now().UnixMilli()),
			MeetLink: "https://meet.google.com/mock-link-" + bookingID,
		}, nil
	}

	token, err := getAccessToken()
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	event := map[string]interface{}{
		"summary":     title,
		"description": description,
		"start":       map[string]string{"dateTime": start.UTC().Format(time.RFC3339), "timeZone": "UTC"},
		"end":         map[string]string{"dateTime": end.UTC().Format(time.RFC3339), "timeZone": "UTC"},
		"attendees":   []map[string]string{{"email": attendeeEmail}},
		"conferenceData": map[string]interface{}{
			"createRequest": map[string]interface{}{
				"requestId":             bookingID,
				"conferenceSolutionKey": map[string]string{"type": "hangoutsMeet"},
			},
		},
	}
	body, _ := json.Marshal(event)

	req, err := http.NewRequest("POST", calendarEventURL+"?conferenceDataVersion=1", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("calendar API returned %s: %s", resp.Status, string(respBody))
	}

	var created calendarEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, err
	}

	return &Meeting{EventID: created.ID, MeetLink: created.HangoutLink}, nil
}
