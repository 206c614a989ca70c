package storage

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 535_000_000, time.UTC)

	tests := []struct {
		name     string
		original string
		wantExt  string
	}{
		{name: "png extension preserved", original: "photo.png", wantExt: ".png"},
		{name: "jpeg extension preserved", original: "holiday pic.jpeg", wantExt: ".jpeg"},
		{name: "no extension", original: "README", wantExt: ""},
		{name: "path stripped", original: "../../etc/passwd.txt", wantExt: ".txt"},
		{name: "multiple dots keep last", original: "archive.tar.gz", wantExt: ".gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FileName(tt.original, now)

			assert.True(t, strings.HasSuffix(got, tt.wantExt), "got %q", got)
			assert.True(t, strings.HasPrefix(got, fmt.Sprintf("%d_", now.UnixMilli())), "got %q", got)
			assert.NotContains(t, got, "/")
		})
	}
}

func TestFileNameNoCollisionSameMillisecond(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := FileName("photo.png", now)
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true
	}
}
