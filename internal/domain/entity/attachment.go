package entity

import (
	"fmt"
	"path/filepath"
	"strings"
)

type AttachmentKind string

const (
	KindDocument AttachmentKind = "document"
	KindPhoto    AttachmentKind = "photo"
	KindVideo    AttachmentKind = "video"
	KindAudio    AttachmentKind = "audio"
)

// Attachment is a single file reference delivered with a chat message. It is
// consumed once and never persisted.
type Attachment struct {
	Kind     AttachmentKind
	FileID   string
	FileName string // declared by the sender, may be empty
	FileSize int64  // declared by the gateway, zero when unknown
}

// Per-kind extension used when the sender declared no filename. Documents are
// deliberately absent: without a declared name there is nothing sensible to
// call them.
var fallbackExtension = map[AttachmentKind]string{
	KindPhoto: "jpg",
	KindVideo: "mp4",
	KindAudio: "mp3",
}

// ResolveFilename returns the name the upload will be filed under: the
// declared filename when present, otherwise "{kind}_{file-id}.{ext}".
func (a Attachment) ResolveFilename() (string, error) {
	if a.FileName != "" {
		return a.FileName, nil
	}
	ext, ok := fallbackExtension[a.Kind]
	if !ok {
		return "", fmt.Errorf("%s has no filename", a.Kind)
	}
	return fmt.Sprintf("%s_%s.%s", a.Kind, a.FileID, ext), nil
}

// TempSuffix derives the temp file suffix from a resolved filename, empty when
// the name carries no extension.
func TempSuffix(filename string) string {
	if strings.Contains(filename, ".") {
		return filepath.Ext(filename)
	}
	return ""
}
