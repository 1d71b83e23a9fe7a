package notifier

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/aleister1102/urlchecker/internal/models"
)

type formField struct {
	name  string
	value string
}

// buildMultipartBody encodes fields followed by the attachment under fileField.
// The result is a byte slice so the request can be retried.
func buildMultipartBody(fields []formField, fileField string, attachment *models.Attachment) ([]byte, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, f := range fields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write %s to multipart: %w", f.name, err)
		}
	}

	if attachment != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileField, attachment.Filename))
		contentType := attachment.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(attachment.Data); err != nil {
			return nil, "", fmt.Errorf("failed to copy file data to form: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body.Bytes(), writer.FormDataContentType(), nil
}

// truncate cuts s to at most max bytes without splitting a UTF-8 sequence
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
