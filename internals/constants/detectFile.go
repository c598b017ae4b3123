package constants

import (
	"path/filepath"
	"strings"
)

type FileKind int

const (
	FileKindUnknown FileKind = iota
	FileKindPDF
	FileKindDoc
	FileKindImage
)

// DetectFileTypeFromExt classifies an upload by its file name only; content
// sniffing happens after the body is read.
func DetectFileTypeFromExt(filename string) FileKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FileKindPDF
	case ".doc", ".docx":
		return FileKindDoc
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return FileKindImage
	default:
		return FileKindUnknown
	}
}
