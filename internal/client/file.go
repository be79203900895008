package client

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the category payload from disk
type FileSource struct {
	path   string
	format Format
}

func NewFileSource(path string, format Format) *FileSource {
	return &FileSource{path: path, format: format}
}

func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Fetch(ctx context.Context) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("request cancelled: %w", err)
	}
	body, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}
	return &Payload{Source: s.path, Format: s.format, Body: body}, nil
}
