package finder

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/leapstack-labs/findsqlite/internal/fileinfo"
	"github.com/leapstack-labs/findsqlite/pkg/schema"
)

// Block is everything reported for one confirmed database.
type Block struct {
	Path     string
	Metadata *fileinfo.Snapshot // nil when not requested or not captured
	Schema   []string
}

// Render assembles the complete text of the block, including the trailing
// separator and newline.
func (b Block) Render(opts Options) string {
	var sb strings.Builder
	sb.WriteString(strconv.Quote(b.Path))

	if opts.ShowMetadata && b.Metadata != nil {
		sb.WriteString("\n  meta:\n")
		sb.WriteString(b.Metadata.Render())
	}

	if opts.ShowSchema {
		sb.WriteString("\n  schema:")
		if len(b.Schema) > 0 {
			sb.WriteByte('\n')
			sb.WriteString(schema.Render(b.Schema))
		}
	}

	if opts.hasSections() {
		sb.WriteString(opts.Separator)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// syncWriter serializes whole blocks onto a shared writer.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newSyncWriter(w io.Writer) *syncWriter {
	return &syncWriter{w: w}
}

// WriteBlock writes text with a single call to the underlying writer.
func (s *syncWriter) WriteBlock(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, text)
	return err
}
