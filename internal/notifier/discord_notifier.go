package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aleister1102/urlchecker/internal/httpclient"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/aleister1102/urlchecker/internal/notifier/discord"
	"github.com/rs/zerolog"
)

// DiscordNotifier handles sending notifications to a Discord webhook.
type DiscordNotifier struct {
	httpClient     *httpclient.HTTPClient
	webhookURL     string
	username       string
	mentionRoleIDs []string
	logger         zerolog.Logger
	now            func() time.Time
}

// NewDiscordNotifier creates a new DiscordNotifier posting to webhookURL
func NewDiscordNotifier(httpClient *httpclient.HTTPClient, webhookURL, username string, mentionRoleIDs []string, logger zerolog.Logger) (*DiscordNotifier, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("discord notifier needs an HTTP client")
	}
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return nil, fmt.Errorf("invalid discord webhook URL: %w", err)
	}
	return &DiscordNotifier{
		httpClient:     httpClient,
		webhookURL:     webhookURL,
		username:       username,
		mentionRoleIDs: mentionRoleIDs,
		logger:         logger.With().Str("module", "DiscordNotifier").Logger(),
		now:            time.Now,
	}, nil
}

// Dispatch implements Dispatcher. The payload goes in the payload_json field
// and the attachment in file[0].
func (dn *DiscordNotifier) Dispatch(ctx context.Context, message string, attachment *models.Attachment) error {
	if attachment != nil && len(attachment.Data) > DiscordMaxFileSize {
		dn.logger.Warn().Str("filename", attachment.Filename).Int("size", len(attachment.Data)).Msg("Attachment exceeds Discord limit, sending message only")
		attachment = nil
	}

	payload, err := dn.buildPayload(message, attachment)
	if err != nil {
		return err
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		dn.logger.Error().Err(err).Msg("Failed to marshal Discord payload to JSON")
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	body, contentType, err := buildMultipartBody([]formField{{name: "payload_json", value: string(payloadJSON)}}, "file[0]", attachment)
	if err != nil {
		return err
	}

	resp, err := dn.httpClient.Do(&httpclient.HTTPRequest{
		URL:     dn.webhookURL,
		LogURL:  "discord-webhook",
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": contentType},
		Body:    body,
		Context: ctx,
	})
	if err != nil {
		dn.logger.Error().Err(err).Msg("Failed to send Discord notification")
		return fmt.Errorf("failed to send discord notification: %w", err)
	}
	if !resp.IsSuccess() {
		dn.logger.Error().Int("status_code", resp.StatusCode).Str("response_body", string(resp.Body)).Msg("Discord notification failed")
		return httpclient.NewHTTPErrorWithURL(resp.StatusCode, string(resp.Body), "discord-webhook")
	}

	dn.logger.Info().Int("status_code", resp.StatusCode).Bool("with_attachment", attachment != nil).Msg("Discord notification sent successfully")
	return nil
}

func (dn *DiscordNotifier) buildPayload(message string, attachment *models.Attachment) (discord.DiscordMessagePayload, error) {
	embedBuilder := discord.NewDiscordEmbedBuilder().
		WithTitle(truncate(message, discord.MaxTitleLength)).
		WithTimestamp(dn.now()).
		WithFooter(DiscordFooterText).
		WithColor(InfoEmbedColor)
	if attachment != nil {
		embedBuilder.
			WithColor(MonitorEmbedColor).
			AddField("Diff", attachment.Filename, false)
	}
	embed, err := embedBuilder.Build()
	if err != nil {
		return discord.DiscordMessagePayload{}, fmt.Errorf("invalid discord embed: %w", err)
	}

	return discord.NewDiscordMessagePayloadBuilder().
		WithContent(truncate(message, DiscordMaxContentLength-200)).
		WithUsername(dn.username).
		WithRoleMentions(dn.mentionRoleIDs).
		AddEmbed(embed).
		Build(), nil
}
