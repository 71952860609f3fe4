package util

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// XLSXContentType is the MIME type archived workbooks are stored under.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// newGCSClient is swapped out by tests to point at a fake server.
var newGCSClient = func(ctx context.Context) (*storage.Client, error) {
	return storage.NewClient(ctx)
}

// ArchiveToGCS stores an uploaded workbook in the archive bucket and
// returns its gs:// URL and size in bytes.
func ArchiveToGCS(ctx context.Context, bucketName, objectName string, data []byte, contentType string) (string, int64, error) {
	client, err := newGCSClient(ctx)
	if err != nil {
		return "", 0, err
	}
	defer client.Close()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	size, err := w.Write(data)
	if err != nil {
		_ = w.Close()
		return "", 0, err
	}
	if err := w.Close(); err != nil {
		return "", 0, err
	}

	return fmt.Sprintf("gs://%s/%s", bucketName, objectName), int64(size), nil
}

var objectPartRe = regexp.MustCompile(`[^a-z0-9_.\-]`)

func SanitizePart(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = objectPartRe.ReplaceAllString(s, "")
	if s == "" {
		return "unknown"
	}
	return s
}

// ArchiveObjectName builds the object path for an imported workbook,
// grouped by program and stamped so repeat uploads never collide.
func ArchiveObjectName(program, filename string) string {
	return fmt.Sprintf(
		"imports/%s/%s_%s",
		SanitizePart(program),
		time.Now().UTC().Format("20060102T150405"),
		SanitizePart(filename),
	)
}
