package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SinkEntry pairs a record with the severity it was forwarded at.
type SinkEntry struct {
	Level  Level  `json:"level"`
	Record Record `json:"record"`
}

// JSONLSink appends one JSON object per forwarded record, newline
// delimited. Unlike FileSink's text lines, JSONL output can be reloaded
// with LoadHistory for post-hoc replay of a session.
type JSONLSink struct {
	mutex sync.Mutex
	path  string
	file  *os.File
}

// NewJSONLSink opens (or creates) the JSONL file at path for appending.
func NewJSONLSink(path string) (*JSONLSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &JSONLSink{path: path, file: file}, nil
}

func (s *JSONLSink) Name() string {
	return "jsonl:" + s.path
}

func (s *JSONLSink) Write(level Level, record Record) error {
	data, err := json.Marshal(SinkEntry{Level: level, Record: record})
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.file == nil {
		return fmt.Errorf("sink is closed")
	}
	_, err = s.file.Write(append(data, '\n'))
	return err
}

func (s *JSONLSink) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// History reloads every entry this sink has written.
func (s *JSONLSink) History() ([]SinkEntry, error) {
	return LoadHistory(s.path)
}

// LoadHistory reads a JSONL activity log back into entries, in the order
// they were written.
func LoadHistory(path string) ([]SinkEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []SinkEntry
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		var entry SinkEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
