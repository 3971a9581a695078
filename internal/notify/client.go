package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cmms-platform/cmms-service/internal/model"
)

// Client отправляет события заявок внешнему нотификатору (почтовая рассылка
// сабмиттерам живёт за его пределами). Best-effort, не блокирует API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient возвращает клиент. Если baseURL пустой, все вызовы — no-op.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// SubmissionPayload — тело POST /notify/submission.
type SubmissionPayload struct {
	SubmissionID   uint64 `json:"submission_id"`
	Code           string `json:"code"`
	PortalID       uint64 `json:"portal_id"`
	Status         string `json:"status"`
	SubmitterEmail string `json:"submitter_email,omitempty"`
	Event          string `json:"event"`
	Message        string `json:"message,omitempty"`
}

// NotifySubmission delivers one submission event. Call from a goroutine after
// the mutation commits.
func (c *Client) NotifySubmission(ctx context.Context, event, message string, s *model.PortalSubmission) {
	if c.baseURL == "" {
		return
	}
	payload := SubmissionPayload{
		SubmissionID:   s.ID,
		Code:           s.Code,
		PortalID:       s.PortalID,
		Status:         string(s.Status),
		SubmitterEmail: s.SubmitterEmail,
		Event:          event,
		Message:        message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Error("notify: marshal")
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notify/submission", bytes.NewReader(body))
	if err != nil {
		logrus.WithError(err).Error("notify: new request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("notify: request")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{"status": resp.StatusCode, "submission": s.ID}).Warn("notify: unexpected status")
	}
}

// NotifySubmissionAsync вызывает NotifySubmission в отдельной горутине с
// отвязанным контекстом (событие должно уйти даже при отмене запроса).
func (c *Client) NotifySubmissionAsync(event, message string, s *model.PortalSubmission) {
	if c.baseURL == "" {
		return
	}
	sub := *s
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.NotifySubmission(ctx, event, message, &sub)
	}()
}
