package outfile

import (
	"bytes"

	"github.com/natefinch/atomic"
)

// WriteHTMLFile writes html to outPath, replacing any existing file
// atomically so a reader never observes a half-written page.
func WriteHTMLFile(outPath string, html []byte) error {
	return atomic.WriteFile(outPath, bytes.NewReader(html))
}
