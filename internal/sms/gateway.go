package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GatewaySender entrega códigos vía un gateway SMS HTTP genérico.
type GatewaySender struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGatewaySender(baseURL, apiKey string, logger *zap.Logger) (*GatewaySender, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("sms gateway url is required")
	}
	return &GatewaySender{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}, nil
}

func (s *GatewaySender) SendOTP(ctx context.Context, phone, code string, expiresAt time.Time) error {
	payload := map[string]string{
		"to":      phone,
		"message": fmt.Sprintf("Your verification code is %s. It expires at %s.", code, expiresAt.Format("15:04 MST")),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if s.logger != nil {
			s.logger.Warn("sms gateway rejected message", zap.Int("status", resp.StatusCode))
		}
		return fmt.Errorf("sms gateway status %d", resp.StatusCode)
	}
	return nil
}
