package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/internhub-dev/internhub/internal/models"
	"github.com/sirupsen/logrus"
)

// Organizations may configure a webhook URL on their profile; application
// events are POSTed there as plain JSON. Delivery is best-effort: a failed
// notification never fails the request that triggered it.

const (
	EventApplicationReceived  = "application.received"
	EventApplicationWithdrawn = "application.withdrawn"
	EventPendingReminder      = "applications.pending_reminder"
)

type WebhookPayload struct {
	Event           string    `json:"event"`
	InternshipID    uint      `json:"internship_id,omitempty"`
	InternshipTitle string    `json:"internship_title,omitempty"`
	ApplicationID   uint      `json:"application_id,omitempty"`
	PendingCount    int       `json:"pending_count,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

var webhookClient = &http.Client{Timeout: 10 * time.Second}

func postWebhook(url string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := webhookClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// NotifyApplicationEvent tells the owning organization about an application
// change, asynchronously.
func NotifyApplicationEvent(event string, org *models.OrganizationProfile, internship *models.Internship, applicationID uint) {
	if org == nil || org.WebhookURL == "" {
		return
	}

	payload := WebhookPayload{
		Event:         event,
		ApplicationID: applicationID,
		Timestamp:     time.Now().UTC(),
	}
	if internship != nil {
		payload.InternshipID = internship.ID
		payload.InternshipTitle = internship.Title
	}

	go func() {
		if err := postWebhook(org.WebhookURL, payload); err != nil {
			logrus.WithError(err).Warnf("Failed to notify organization %d", org.ID)
		}
	}()
}

// NotifyPendingReminder sends the periodic stale-pending-applications digest.
func NotifyPendingReminder(org *models.OrganizationProfile, pendingCount int) {
	if org == nil || org.WebhookURL == "" || pendingCount == 0 {
		return
	}

	payload := WebhookPayload{
		Event:        EventPendingReminder,
		PendingCount: pendingCount,
		Timestamp:    time.Now().UTC(),
	}

	if err := postWebhook(org.WebhookURL, payload); err != nil {
		logrus.WithError(err).Warnf("Failed to send pending reminder to organization %d", org.ID)
	}
}
