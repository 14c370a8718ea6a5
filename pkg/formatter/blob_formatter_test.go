package formatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"stowblob/pkg/common"
	"stowblob/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleBlobs() []storage.Blob {
	return []storage.Blob{
		{
			Name:         "backup-2024.tar.gz",
			Container:    "archive",
			Provider:     common.Azure,
			Size:         3 * 1024 * 1024,
			ContentType:  "application/gzip",
			LastModified: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
			ETag:         "0x8DC",
		},
		{
			Name:      "notes.txt",
			Container: "archive",
			Provider:  common.Azure,
			Size:      -1,
		},
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "names", want: OutputNames},
		{in: "TABLE", want: OutputTable},
		{in: " json ", want: OutputJSON},
		{in: "yaml", want: OutputYAML},
		{in: "csv", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBlobList_Names(t *testing.T) {
	out, err := NewBlobFormatter().FormatBlobList(sampleBlobs(), OutputNames)
	require.NoError(t, err)
	assert.Equal(t, "backup-2024.tar.gz\nnotes.txt\n", out)
}

func TestFormatBlobList_Table(t *testing.T) {
	out, err := NewBlobFormatter().FormatBlobList(sampleBlobs(), OutputTable)
	require.NoError(t, err)

	for _, want := range []string{"NAME", "SIZE", "backup-2024.tar.gz", "3.0 MB", "application/gzip", "2024-03-01 12:30:00", "notes.txt"} {
		assert.Contains(t, out, want)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var notesLine string
	for _, line := range lines {
		if strings.Contains(line, "notes.txt") {
			notesLine = line
		}
	}
	require.NotEmpty(t, notesLine)
	assert.NotContains(t, notesLine, "N/A")
	assert.Contains(t, notesLine, "-")
}

func TestFormatBlobList_JSON(t *testing.T) {
	out, err := NewBlobFormatter().FormatBlobList(sampleBlobs(), OutputJSON)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "backup-2024.tar.gz", decoded[0]["name"])
	assert.Equal(t, "Azure", decoded[0]["provider"])
	assert.EqualValues(t, 3*1024*1024, decoded[0]["size"])
	assert.NotContains(t, decoded[1], "etag")
	assert.Contains(t, decoded[1], "lastModified", "zero timestamps are still emitted")
}

func TestFormatBlobList_EmptyJSONIsArray(t *testing.T) {
	out, err := NewBlobFormatter().FormatBlobList(nil, OutputJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestFormatBlobList_YAML(t *testing.T) {
	out, err := NewBlobFormatter().FormatBlobList(sampleBlobs(), OutputYAML)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "notes.txt", decoded[1]["name"])
	assert.Equal(t, "archive", decoded[1]["container"])
}

func TestFormatBlobList_UnknownFormat(t *testing.T) {
	_, err := NewBlobFormatter().FormatBlobList(sampleBlobs(), OutputFormat("xml"))
	assert.Error(t, err)
}

func TestTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, NewTable(nil).String())
}

func TestFormatSettings(t *testing.T) {
	settings := map[string]string{"storage.container": "archive", "general.restoredir": "/tmp/restore"}
	out := FormatSettings(settings, []string{"general.restoredir", "storage.container"})
	assert.Equal(t, "  general.restoredir = /tmp/restore\n  storage.container  = archive\n", out)
}
