package discord

// Embed limits enforced by the Discord API
const (
	MaxTitleLength       = 256
	MaxDescriptionLength = 4096
	MaxFields            = 25
	MaxFieldNameLength   = 256
	MaxFieldValueLength  = 1024
	MaxFooterTextLength  = 2048
)

// DiscordEmbed represents a Discord embed object.
type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	URL         string              `json:"url,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"` // ISO8601
	Color       int                 `json:"color,omitempty"`
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
}

// DiscordEmbedFooter represents the footer of an embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

// NewDiscordEmbedFooter creates a new Discord embed footer
func NewDiscordEmbedFooter(text string) *DiscordEmbedFooter {
	return &DiscordEmbedFooter{Text: text}
}

// DiscordEmbedField is a name/value pair shown under the embed description.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// NewDiscordEmbedField creates a new Discord embed field
func NewDiscordEmbedField(name, value string, inline bool) DiscordEmbedField {
	return DiscordEmbedField{Name: name, Value: value, Inline: inline}
}
