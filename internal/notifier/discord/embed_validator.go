package discord

import (
	"fmt"

	"github.com/aleister1102/urlchecker/internal/common"
)

// DiscordEmbedValidator validates Discord embed objects
type DiscordEmbedValidator struct{}

// NewDiscordEmbedValidator creates a new embed validator
func NewDiscordEmbedValidator() *DiscordEmbedValidator {
	return &DiscordEmbedValidator{}
}

// ValidateEmbed validates a Discord embed
func (dev *DiscordEmbedValidator) ValidateEmbed(embed DiscordEmbed) error {
	if len(embed.Title) > MaxTitleLength {
		return common.NewValidationError("title", embed.Title, fmt.Sprintf("title cannot exceed %d characters", MaxTitleLength))
	}

	if len(embed.Description) > MaxDescriptionLength {
		return common.NewValidationError("description", embed.Description, fmt.Sprintf("description cannot exceed %d characters", MaxDescriptionLength))
	}

	if len(embed.Fields) > MaxFields {
		return common.NewValidationError("fields", len(embed.Fields), fmt.Sprintf("cannot have more than %d fields", MaxFields))
	}

	for i, field := range embed.Fields {
		if field.Name == "" {
			return common.NewValidationError("field_name", field.Name, fmt.Sprintf("field %d name cannot be empty", i))
		}
		if field.Value == "" {
			return common.NewValidationError("field_value", field.Value, fmt.Sprintf("field %d value cannot be empty", i))
		}
		if len(field.Name) > MaxFieldNameLength {
			return common.NewValidationError("field_name", field.Name, fmt.Sprintf("field %d name cannot exceed %d characters", i, MaxFieldNameLength))
		}
		if len(field.Value) > MaxFieldValueLength {
			return common.NewValidationError("field_value", field.Value, fmt.Sprintf("field %d value cannot exceed %d characters", i, MaxFieldValueLength))
		}
	}

	if embed.Footer != nil && len(embed.Footer.Text) > MaxFooterTextLength {
		return common.NewValidationError("footer_text", embed.Footer.Text, fmt.Sprintf("footer text cannot exceed %d characters", MaxFooterTextLength))
	}

	return nil
}
