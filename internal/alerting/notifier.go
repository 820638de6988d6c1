package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Notification carries the context of a freshly recorded rock-bottom price.
type Notification struct {
	Item        string
	Store       string
	Unit        string
	UnitPrice   decimal.Decimal
	PreviousLow decimal.Decimal
	RockBottom  decimal.Decimal
	Timestamp   time.Time
}

// Notifier delivers rock-bottom notifications.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// TelegramNotifier pushes messages through the Telegram Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	logger   zerolog.Logger
}

// NewTelegramNotifier constructs a Telegram notifier.
func NewTelegramNotifier(botToken, chatID, baseURL string, timeout time.Duration, logger zerolog.Logger) *TelegramNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "alert_telegram").Logger(),
	}
}

// Notify posts the message via the sendMessage API.
func (n *TelegramNotifier) Notify(ctx context.Context, note Notification) error {
	payload := map[string]string{
		"chat_id": n.chatID,
		"text":    renderMessage(note),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram unexpected status: %d", resp.StatusCode)
	}

	var result struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
		if !result.OK {
			return fmt.Errorf("telegram responded ok=false")
		}
	}

	n.logger.Info().Str("item", note.Item).
		Str("unit_price", note.UnitPrice.String()).
		Msg("rock-bottom alert sent (Telegram)")
	return nil
}

func renderMessage(note Notification) string {
	builder := strings.Builder{}
	builder.WriteString("[Rock Bottom]\n")
	builder.WriteString(fmt.Sprintf("Item: %s\n", note.Item))
	builder.WriteString(fmt.Sprintf("Store: %s\n", note.Store))
	builder.WriteString(fmt.Sprintf("Unit price: %s /%s\n", note.UnitPrice.StringFixed(4), note.Unit))
	if note.PreviousLow.Sign() > 0 {
		builder.WriteString(fmt.Sprintf("Previous low: %s /%s\n", note.PreviousLow.StringFixed(4), note.Unit))
	}
	builder.WriteString(fmt.Sprintf("New target: %s /%s\n", note.RockBottom.StringFixed(4), note.Unit))
	builder.WriteString(fmt.Sprintf("Recorded: %s UTC\n", note.Timestamp.UTC().Format(time.RFC3339)))
	return builder.String()
}

var _ Notifier = (*TelegramNotifier)(nil)
