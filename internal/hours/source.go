package hours

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

//go:embed open_hours.json
var bundledSchedule []byte

// Source loads a fresh schedule table
type Source interface {
	Load(ctx context.Context) (*Table, error)
	Name() string
}

// DecodeDocument parses and validates a JSON schedule document
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode schedule: %w", err)
	}
	if err := Validate(doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// BundledDocument returns the schedule compiled into the binary
func BundledDocument() (Document, error) {
	return DecodeDocument(bundledSchedule)
}

func decodeTable(data []byte, source string) (*Table, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return NewTable(doc, source)
}

// EmbeddedSource serves the schedule bundled into the binary
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "embedded" }

func (s EmbeddedSource) Load(ctx context.Context) (*Table, error) {
	return decodeTable(bundledSchedule, s.Name())
}

// FileSource reads a JSON schedule document from disk on every load
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Load(ctx context.Context) (*Table, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read schedule file: %w", err)
	}
	return decodeTable(data, s.Name())
}

/*
Dining hours service. Open, closed and limited status for campus dining halls.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
