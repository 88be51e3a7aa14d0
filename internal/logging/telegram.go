package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"farmsync/internal/config"
)

// NotifierService is the fire-and-forget operator channel: marketplace update
// failures and missing linkages end up here. Delivery is best-effort and a
// send failure never propagates to the caller.
type NotifierService interface {
	Notify(value string)
	NotifyError(value string, err error)
	NotifyWarning(value string)
	NotifySuccess(value string)
}

type telegramNotifier struct {
	creds config.TelegramBotConfig
}

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

const (
	iconInfo    = "ℹ️"
	iconError   = "❌"
	iconWarning = "⚠️"
	iconSuccess = "✅"
)

// NewNotifier returns a nil notifier when credentials are absent; all methods
// are nil-safe so callers never have to guard.
func NewNotifier(creds config.TelegramBotConfig) NotifierService {
	if creds.ChatId == "" || creds.Token == "" {
		return (*telegramNotifier)(nil)
	}
	return &telegramNotifier{creds: creds}
}

func (c *telegramNotifier) Notify(value string) {
	if c == nil {
		return
	}
	_ = c.sendRequest(formatMessage(iconInfo, "INFO", value))
}

func (c *telegramNotifier) NotifyError(value string, err error) {
	if c == nil {
		return
	}
	if err != nil {
		value = fmt.Sprintf("%s: %v", value, err)
	}
	_ = c.sendRequest(formatMessage(iconError, "ERROR", value))
}

func (c *telegramNotifier) NotifyWarning(value string) {
	if c == nil {
		return
	}
	_ = c.sendRequest(formatMessage(iconWarning, "WARNING", value))
}

func (c *telegramNotifier) NotifySuccess(value string) {
	if c == nil {
		return
	}
	_ = c.sendRequest(formatMessage(iconSuccess, "SUCCESS", value))
}

func formatMessage(icon, level, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	return fmt.Sprintf("%s %s: %s", icon, level, v)
}

func (c *telegramNotifier) sendRequest(value string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", c.creds.Token)

	reqBody := telegramRequest{
		ChatId: c.creds.ChatId,
		Text:   value,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram send failed: %s: %s", resp.Status, string(respBody))
	}

	return nil
}
