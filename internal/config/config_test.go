package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `[storage]
account = myaccount
key = c2VjcmV0
container = archive

[general]
restoredir = /var/restore
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Full(t *testing.T) {
	cfg, err := NewConfigManager(writeConfig(t, fullConfig)).LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "azure", cfg.Storage.Provider)
	assert.Equal(t, "myaccount", cfg.Storage.Account)
	assert.Equal(t, "c2VjcmV0", cfg.Storage.Key)
	assert.Equal(t, "archive", cfg.Storage.Container)
	assert.Equal(t, "/var/restore", cfg.General.RestoreDir)
	assert.True(t, cfg.General.Overwrite, "overwrite defaults to true")
}

func TestLoadConfig_InlineComments(t *testing.T) {
	content := `[storage]
provider = azure ; default backend
account = myaccount
key = abc;def#ghi==
container = archive # nightly

[general]
restoredir = /var/restore
`
	cfg, err := NewConfigManager(writeConfig(t, content)).LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "azure", cfg.Storage.Provider)
	assert.Equal(t, "abc;def#ghi==", cfg.Storage.Key, "comment markers inside a value are kept")
	assert.Equal(t, "archive", cfg.Storage.Container)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := NewConfigManager(filepath.Join(t.TempDir(), "absent.ini")).LoadConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestLoadConfig_MissingRequiredKeys(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantKey string
	}{
		{
			name:    "container",
			content: "[storage]\naccount = a\nkey = k\n",
			wantKey: "storage.container",
		},
		{
			name:    "account",
			content: "[storage]\nkey = k\ncontainer = c\n",
			wantKey: "storage.account",
		},
		{
			name:    "key",
			content: "[storage]\naccount = a\ncontainer = c\n",
			wantKey: "storage.key",
		},
		{
			name:    "blank value",
			content: "[storage]\naccount = a\nkey =   \ncontainer = c\n",
			wantKey: "storage.key",
		},
		{
			name:    "no storage section",
			content: "[general]\nrestoredir = /tmp\n",
			wantKey: "storage.container",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfigManager(writeConfig(t, tt.content)).LoadConfig()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigMissing)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestLoadConfig_GoCloudNeedsOnlyContainer(t *testing.T) {
	cfg, err := NewConfigManager(writeConfig(t, "[storage]\nprovider = GoCloud\ncontainer = mem://\n")).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "gocloud", cfg.Storage.Provider)
	assert.Equal(t, "mem://", cfg.Storage.Container)
}

func TestLoadConfig_OverwriteAndExtraSettings(t *testing.T) {
	content := fullConfig + "overwrite = false\nretention = 30d\n"
	cfg, err := NewConfigManager(writeConfig(t, content)).LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.General.Overwrite)
	assert.Equal(t, "30d", cfg.General.Extra["retention"])
}

func TestLoadConfig_CaseInsensitiveKeys(t *testing.T) {
	content := "[Storage]\nAccount = a\nKEY = k\nContainer = c\n"
	cfg, err := NewConfigManager(writeConfig(t, content)).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.Storage.Account)
	assert.Equal(t, "k", cfg.Storage.Key)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STOWBLOB_STORAGE_KEY", "from-env")
	t.Setenv("STOWBLOB_GENERAL_OVERWRITE", "false")

	cfg, err := NewConfigManager(writeConfig(t, fullConfig)).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Storage.Key)
	assert.False(t, cfg.General.Overwrite)
}

func TestLoadConfig_EnvironmentSuppliesMissingKey(t *testing.T) {
	t.Setenv("STOWBLOB_STORAGE_CONTAINER", "env-container")

	cfg, err := NewConfigManager(writeConfig(t, "[storage]\naccount = a\nkey = k\n")).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-container", cfg.Storage.Container)
}

func TestLoadConfig_InvalidEndpoint(t *testing.T) {
	content := "[storage]\naccount = a\nkey = k\ncontainer = c\nendpoint = not a url\n"
	_, err := NewConfigManager(writeConfig(t, content)).LoadConfig()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigMissing)
	assert.Contains(t, err.Error(), "storage.endpoint")
}

func TestNewConfigManager_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultConfigFileName, NewConfigManager("").Path())
}

func TestConfigManager_SetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	m := NewConfigManager(path)

	require.NoError(t, m.SetValue("storage.account", "acct"))
	require.NoError(t, m.SetValue("Storage.Container", "box"))
	require.NoError(t, m.SetValue("general.restoredir", "/restore"))

	value, exists, err := m.GetValue("storage.account")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "acct", value)

	value, exists, err = m.GetValue("storage.container")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "box", value)

	settings, err := m.GetAllSettings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"storage.account":    "acct",
		"storage.container":  "box",
		"general.restoredir": "/restore",
	}, settings)
	assert.Equal(t, []string{"general.restoredir", "storage.account", "storage.container"}, SortedKeys(settings))

	deleted, err := m.DeleteValue("storage.account")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, exists, err = m.GetValue("storage.account")
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err = m.DeleteValue("storage.account")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestConfigManager_SetValueRejectsUnknownKeys(t *testing.T) {
	m := NewConfigManager(filepath.Join(t.TempDir(), "config.ini"))

	tests := []struct {
		name string
		key  string
	}{
		{name: "no section", key: "account"},
		{name: "unknown section", key: "network.proxy"},
		{name: "unknown storage key", key: "storage.bucket"},
		{name: "empty field", key: "storage."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, m.SetValue(tt.key, "x"))
		})
	}

	assert.NoError(t, m.SetValue("general.anything", "x"), "general accepts extra settings")
}
