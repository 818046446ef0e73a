package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONOutput appends events as JSON lines to
// <path>/<folder>/<topic>/year=/month=/day=/hour=/data.json.
type JSONOutput struct {
	basePath string
	folder   string

	mu    sync.Mutex
	files map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	h, err := readHeader(msg)
	if err != nil {
		return err
	}

	partitionPath := partition(h.Timestamp)
	fullPath := filepath.Join(j.basePath, j.folder, topic, partitionPath)

	j.mu.Lock()
	defer j.mu.Unlock()

	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	file, ok := j.files[fileKey]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err = os.Create(filepath.Join(fullPath, "data.json"))
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var lastErr error
	for key, file := range j.files {
		if err := file.Close(); err != nil {
			lastErr = err
		}
		delete(j.files, key)
	}
	return lastErr
}
