package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"estatedesk/internal/config"
)

// SMSService handles sending SMS messages
type SMSService struct {
	cfg *config.SMSConfig
}

// NewSMSService creates a new SMS service
func NewSMSService(cfg *config.SMSConfig) *SMSService {
	return &SMSService{cfg: cfg}
}

// SendUrgentAlert sends a short lead alert to the operator phone. Used for
// inquiries flagged urgent so the sales desk can call back immediately.
func (s *SMSService) SendUrgentAlert(phoneNumber, leadName, leadPhone string) error {
	if !s.cfg.Enabled {
		fmt.Printf("[SMS] Urgent lead alert would be sent to %s: %s (%s)\n", phoneNumber, leadName, leadPhone)
		return nil
	}

	message := fmt.Sprintf("EstateDesk: urgent inquiry from %s (%s). Please call back.", leadName, leadPhone)

	switch strings.ToLower(s.cfg.Provider) {
	case "twilio":
		return s.sendViaTwilio(phoneNumber, message)
	case "console", "dev", "development":
		fmt.Printf("[SMS] Would send to %s: %s\n", phoneNumber, message)
		return nil
	default:
		return fmt.Errorf("unsupported SMS provider: %s", s.cfg.Provider)
	}
}

// sendViaTwilio sends SMS via Twilio API
func (s *SMSService) sendViaTwilio(phoneNumber, message string) error {
	if s.cfg.TwilioSID == "" || s.cfg.TwilioAuth == "" || s.cfg.TwilioFrom == "" {
		return fmt.Errorf("Twilio not properly configured")
	}

	// Normalize phone number (ensure it starts with +)
	normalizedPhone := phoneNumber
	if !strings.HasPrefix(normalizedPhone, "+") {
		// Assume Indian number if no country code
		normalizedPhone = "+91" + normalizedPhone
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.cfg.TwilioSID)

	form := url.Values{}
	form.Set("From", s.cfg.TwilioFrom)
	form.Set("To", normalizedPhone)
	form.Set("Body", message)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(s.cfg.TwilioSID, s.cfg.TwilioAuth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errorResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResp)
		return fmt.Errorf("Twilio API error (status %d): %v", resp.StatusCode, errorResp)
	}

	return nil
}

// IsEnabled returns whether SMS service is enabled
func (s *SMSService) IsEnabled() bool {
	return s.cfg.Enabled
}
