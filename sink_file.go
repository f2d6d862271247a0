package activity

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileSink appends one text line per forwarded record:
//
//	[HH:MM:SS] LEVEL source: message
//
// The file is log output, not a reloadable store. Writes are append-only.
type FileSink struct {
	mutex sync.Mutex
	path  string
	file  *os.File
}

// NewFileSink opens (or creates) the log file at path for appending.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &FileSink{path: path, file: file}, nil
}

func (s *FileSink) Name() string {
	return "file:" + s.path
}

func (s *FileSink) Write(level Level, record Record) error {
	source := record.Source
	if source == "" {
		source = string(record.Kind)
	}
	line := fmt.Sprintf("[%s] %s %s: %s\n",
		record.Timestamp.Format("15:04:05"), level, source, record.Message)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.file == nil {
		return fmt.Errorf("sink is closed")
	}
	_, err := s.file.WriteString(line)
	return err
}

func (s *FileSink) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
