// File: pkg/storage/model.go
package storage

import (
	"fmt"
	"stowblob/pkg/common"
	"time"
)

// Describes a single blob as reported by the provider during a listing
type Blob struct {
	Name      string          `json:"name" yaml:"name"`
	Container string          `json:"container" yaml:"container"`
	Provider  common.Provider `json:"provider" yaml:"provider"`
	// A value of -1 indicates that the size is unknown
	Size         int64     `json:"size" yaml:"size"`
	ContentType  string    `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	LastModified time.Time `json:"lastModified" yaml:"lastModified"`
	ETag         string    `json:"etag,omitempty" yaml:"etag,omitempty"`
}

func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "N/A"
	}
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	sizes := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(sizes) {
		return fmt.Sprintf("%d B", bytes) // Fallback if extremely large
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), sizes[exp])
}
