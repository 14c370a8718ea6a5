// File: pkg/formatter/blob_formatter.go
package formatter

import (
	"encoding/json"
	"fmt"
	"stowblob/pkg/storage"
	"strings"

	"gopkg.in/yaml.v3"
)

type OutputFormat string

const (
	// One blob name per line, streamed by the caller
	OutputNames OutputFormat = "names"
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

func OutputFormats() []string {
	return []string{string(OutputNames), string(OutputTable), string(OutputJSON), string(OutputYAML)}
}

func ParseOutputFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case OutputNames, OutputTable, OutputJSON, OutputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format '%s'. Supported formats are: %s", name, strings.Join(OutputFormats(), ", "))
	}
}

type BlobFormatter struct{}

func NewBlobFormatter() *BlobFormatter {
	return &BlobFormatter{}
}

// Renders a complete blob listing. The names format is handled here too for callers that buffer
func (f *BlobFormatter) FormatBlobList(blobs []storage.Blob, format OutputFormat) (string, error) {
	switch format {
	case OutputNames:
		var sb strings.Builder
		for _, blob := range blobs {
			sb.WriteString(blob.Name)
			sb.WriteString("\n")
		}
		return sb.String(), nil
	case OutputTable:
		return f.formatTable(blobs), nil
	case OutputJSON:
		if blobs == nil {
			blobs = []storage.Blob{}
		}
		data, err := json.MarshalIndent(blobs, "", "  ")
		if err != nil {
			return "", fmt.Errorf("error encoding blob list as json: %w", err)
		}
		return string(data) + "\n", nil
	case OutputYAML:
		if blobs == nil {
			blobs = []storage.Blob{}
		}
		data, err := yaml.Marshal(blobs)
		if err != nil {
			return "", fmt.Errorf("error encoding blob list as yaml: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported output format '%s'", format)
	}
}

func (f *BlobFormatter) formatTable(blobs []storage.Blob) string {
	table := NewTable([]string{"NAME", "SIZE", "CONTENT TYPE", "LAST MODIFIED"})

	for _, blob := range blobs {
		size := "-"
		if blob.Size >= 0 {
			size = storage.FormatBytes(blob.Size)
		}
		modified := "-"
		if !blob.LastModified.IsZero() {
			modified = blob.LastModified.UTC().Format("2006-01-02 15:04:05")
		}
		contentType := blob.ContentType
		if contentType == "" {
			contentType = "-"
		}

		table.AddRow([]string{blob.Name, size, contentType, modified})
	}

	return table.String() + "\n"
}

// Renders configuration settings as aligned 'key = value' lines in key order
func FormatSettings(settings map[string]string, keys []string) string {
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %-*s = %s\n", width, k, settings[k])
	}
	return sb.String()
}
