package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Encode renders a document indented by two spaces with HTML characters
// left as they are.
func Encode(document any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(document); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type Writer struct {
	dir   string
	sugar *zap.SugaredLogger
}

func NewWriter(dir string, sugar *zap.SugaredLogger) *Writer {
	return &Writer{dir: dir, sugar: sugar}
}

func (w *Writer) Write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	w.sugar.Infof("Data saved to %s", path)
	return path, nil
}
