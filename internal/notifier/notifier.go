package notifier

import (
	"context"

	"github.com/aleister1102/urlchecker/internal/models"
)

// Dispatcher delivers a message, optionally with one attached file.
type Dispatcher interface {
	Dispatch(ctx context.Context, message string, attachment *models.Attachment) error
}
