package backup

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// WriteDocument saves a document under dir with a timestamped filename and
// returns the full path. The directory is created if missing.
func WriteDocument(doc *Document, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WithStack(err)
	}

	name := "readlog-backup-" + time.Now().UTC().Format("20060102-150405") + ".json"
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.WithStack(err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.WithStack(err)
	}

	return path, nil
}

// ReadDocument loads a backup file written by WriteDocument or exported by an
// older client.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.WithStack(err)
	}

	return doc, nil
}
