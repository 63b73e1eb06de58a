package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Metadata describes an extracted document
type Metadata struct {
	Path      string `json:"path"`
	Format    Format `json:"format"`
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Lines     int    `json:"lines"`     // non-empty lines
	Timestamp string `json:"timestamp"` // RFC3339
}

// NewMetadata creates metadata for cleaned document text with the current timestamp
func NewMetadata(path string, format Format, text string) *Metadata {
	return &Metadata{
		Path:      path,
		Format:    format,
		Hash:      computeHash(text),
		Lines:     countLines(text),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

func countLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
