package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileName builds the on-disk name for an upload: epoch milliseconds, a short
// random id, and the original extension. The original source scheme was bare
// epoch millis, which silently overwrites on same-millisecond uploads; the
// random id closes that race while keeping the extension contract intact.
func FileName(originalName string, now time.Time) string {
	ext := filepath.Ext(filepath.Base(originalName))
	return fmt.Sprintf("%d_%s%s", now.UnixMilli(), uuid.NewString()[:8], ext)
}
