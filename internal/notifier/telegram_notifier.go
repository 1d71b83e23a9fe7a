package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aleister1102/urlchecker/internal/httpclient"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
)

// TelegramNotifier sends messages through the Telegram Bot API. Messages
// without an attachment use sendMessage; with one, sendDocument carries the
// message as the caption.
type TelegramNotifier struct {
	httpClient *httpclient.HTTPClient
	baseURL    string
	token      string
	chatID     string
	logger     zerolog.Logger
}

// telegramResponse is the envelope of every Bot API reply
type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// NewTelegramNotifier creates a TelegramNotifier for chatID
func NewTelegramNotifier(httpClient *httpclient.HTTPClient, baseURL, token, chatID string, logger zerolog.Logger) (*TelegramNotifier, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("telegram notifier needs an HTTP client")
	}
	if token == "" || chatID == "" {
		return nil, fmt.Errorf("telegram bot token and chat id are required")
	}
	return &TelegramNotifier{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		chatID:     chatID,
		logger:     logger.With().Str("module", "TelegramNotifier").Logger(),
	}, nil
}

// Dispatch implements Dispatcher
func (tn *TelegramNotifier) Dispatch(ctx context.Context, message string, attachment *models.Attachment) error {
	if attachment != nil && len(attachment.Data) > TelegramMaxDocumentSize {
		tn.logger.Warn().Str("filename", attachment.Filename).Int("size", len(attachment.Data)).Msg("Attachment exceeds Telegram limit, sending message only")
		attachment = nil
	}

	var req *httpclient.HTTPRequest
	var err error
	if attachment == nil {
		req = tn.sendMessageRequest(ctx, message)
	} else {
		req, err = tn.sendDocumentRequest(ctx, message, attachment)
		if err != nil {
			return err
		}
	}

	resp, err := tn.httpClient.Do(req)
	if err != nil {
		tn.logger.Error().Err(err).Str("method", req.LogURL).Msg("Failed to send Telegram notification")
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}

	var apiResp telegramResponse
	_ = json.Unmarshal(resp.Body, &apiResp)
	if !resp.IsSuccess() || !apiResp.OK {
		tn.logger.Error().Int("status_code", resp.StatusCode).Str("description", apiResp.Description).Msg("Telegram notification failed")
		return httpclient.NewHTTPErrorWithURL(resp.StatusCode, apiResp.Description, req.LogURL)
	}

	tn.logger.Info().Bool("with_attachment", attachment != nil).Msg("Telegram notification sent successfully")
	return nil
}

func (tn *TelegramNotifier) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", tn.baseURL, tn.token, method)
}

// redactedURL is methodURL without the bot token, for logs and errors
func (tn *TelegramNotifier) redactedURL(method string) string {
	return fmt.Sprintf("%s/bot<redacted>/%s", tn.baseURL, method)
}

func (tn *TelegramNotifier) sendMessageRequest(ctx context.Context, message string) *httpclient.HTTPRequest {
	form := url.Values{}
	form.Set("chat_id", tn.chatID)
	form.Set("text", truncate(message, TelegramMaxMessageLength))
	form.Set("disable_web_page_preview", "true")

	return &httpclient.HTTPRequest{
		URL:     tn.methodURL("sendMessage"),
		LogURL:  tn.redactedURL("sendMessage"),
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		Body:    []byte(form.Encode()),
		Context: ctx,
	}
}

func (tn *TelegramNotifier) sendDocumentRequest(ctx context.Context, message string, attachment *models.Attachment) (*httpclient.HTTPRequest, error) {
	fields := []formField{
		{name: "chat_id", value: tn.chatID},
		{name: "caption", value: truncate(message, TelegramMaxCaptionLength)},
	}
	body, contentType, err := buildMultipartBody(fields, "document", attachment)
	if err != nil {
		return nil, err
	}

	return &httpclient.HTTPRequest{
		URL:     tn.methodURL("sendDocument"),
		LogURL:  tn.redactedURL("sendDocument"),
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": contentType},
		Body:    body,
		Context: ctx,
	}, nil
}
