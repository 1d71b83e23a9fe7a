package models

// DiffArtifact is the rendered, human-reviewable diff between two versions of
// a resource. Previous and Current are the line sequences it was built from.
type DiffArtifact struct {
	Document     []byte
	Previous     []string
	Current      []string
	Filename     string
	ContentType  string
	LinesAdded   int
	LinesDeleted int
	// NewlineAtEOF is set when only one side ends with a newline.
	NewlineAtEOF bool
}

// HasDifferences reports whether any line was added or removed. A change of
// the final newline alone is not a line difference.
func (a *DiffArtifact) HasDifferences() bool {
	return a != nil && (a.LinesAdded > 0 || a.LinesDeleted > 0)
}

// Attachment is a file handed to a notification dispatcher.
type Attachment struct {
	Filename    string
	Data        []byte
	ContentType string
}

// AsAttachment exposes the artifact document as an attachment.
func (a *DiffArtifact) AsAttachment() *Attachment {
	if a == nil {
		return nil
	}
	return &Attachment{
		Filename:    a.Filename,
		Data:        a.Document,
		ContentType: a.ContentType,
	}
}
