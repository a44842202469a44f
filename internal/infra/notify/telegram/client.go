package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client клиент Telegram Bot API для отправки уведомлений
// Отправка уведомлений не влияет на судьбу бронирования: все ошибки
// логируются и поглощаются вызывающей стороной
type Client struct {
	baseURL    string
	token      string
	adminChats []int64
	httpClient *http.Client
	log        Logger
	metrics    MetricsCollector
}

// NewClient создает новый экземпляр клиента Telegram
func NewClient(token string, adminChats []int64, timeout time.Duration, log Logger, metrics MetricsCollector) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		adminChats: adminChats,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: metrics,
	}
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notify отправляет текстовое сообщение в указанный чат
func (c *Client) Notify(ctx context.Context, chatID int64, text string) error {
	if c.token == "" {
		return ErrNotConfigured
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.incMetric("error")
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.incMetric("error")
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.incMetric("error")
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !result.OK {
		c.incMetric("error")
		return fmt.Errorf("%w: telegram API error: %s", ErrInvalidResponse, result.Description)
	}

	c.incMetric("sent")
	return nil
}

// NotifyAdmins отправляет сообщение во все чаты администраторов
// Ошибка по одному чату не мешает доставке в остальные
func (c *Client) NotifyAdmins(ctx context.Context, text string) {
	if c.token == "" || len(c.adminChats) == 0 {
		return
	}

	for _, chatID := range c.adminChats {
		if err := c.Notify(ctx, chatID, text); err != nil {
			c.log.Error("Failed to notify admin chat %d: %v", chatID, err)
			continue
		}
		c.log.Info("Admin notification delivered to chat %d", chatID)
	}
}

func (c *Client) incMetric(status string) {
	if c.metrics != nil {
		c.metrics.IncNotification(status)
	}
}
