package discord

import (
	"fmt"
	"strings"
)

// DiscordMessagePayloadBuilder helps in constructing DiscordMessagePayload objects.
type DiscordMessagePayloadBuilder struct {
	payload DiscordMessagePayload
}

// NewDiscordMessagePayloadBuilder creates a new instance of DiscordMessagePayloadBuilder.
func NewDiscordMessagePayloadBuilder() *DiscordMessagePayloadBuilder {
	return &DiscordMessagePayloadBuilder{}
}

// WithContent sets the Content for the DiscordMessagePayload.
func (b *DiscordMessagePayloadBuilder) WithContent(content string) *DiscordMessagePayloadBuilder {
	b.payload.Content = content
	return b
}

// WithUsername sets the Username for the DiscordMessagePayload.
func (b *DiscordMessagePayloadBuilder) WithUsername(username string) *DiscordMessagePayloadBuilder {
	b.payload.Username = username
	return b
}

// WithRoleMentions prefixes Content with a mention of each role and only
// allows those roles to be pinged.
func (b *DiscordMessagePayloadBuilder) WithRoleMentions(roleIDs []string) *DiscordMessagePayloadBuilder {
	roles := make([]string, 0, len(roleIDs))
	mentions := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		roles = append(roles, id)
		mentions = append(mentions, fmt.Sprintf("<@&%s>", id))
	}
	if len(roles) == 0 {
		return b
	}

	content := strings.Join(mentions, " ")
	if b.payload.Content != "" {
		content += " " + b.payload.Content
	}
	b.payload.Content = content
	b.payload.AllowedMentions = &DiscordAllowedMentions{Parse: []string{}, Roles: roles}
	return b
}

// AddEmbed adds a DiscordEmbed to the DiscordMessagePayload.
func (b *DiscordMessagePayloadBuilder) AddEmbed(embed DiscordEmbed) *DiscordMessagePayloadBuilder {
	b.payload.Embeds = append(b.payload.Embeds, embed)
	return b
}

// Build returns the constructed DiscordMessagePayload object.
func (b *DiscordMessagePayloadBuilder) Build() DiscordMessagePayload {
	return b.payload
}
