package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ent-client/internal/constants"
)

func TestNewConfigCommand(t *testing.T) {
	t.Parallel()

	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)
	assert.Equal(t, "set KEY VALUE", findSubcommand(t, cmd, "set").Use)
	assert.Equal(t, "unset KEY", findSubcommand(t, cmd, "unset").Use)
	assert.NotNil(t, findSubcommand(t, cmd, "show").RunE)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestSetConfigValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		want    Config
		wantErr error
	}{
		{name: "host", key: "host", value: "monlycee.net", want: Config{Host: "monlycee.net"}},
		{name: "auth url with dash", key: "auth-url", value: "https://ent.iledefrance.fr", want: Config{AuthURL: "https://ent.iledefrance.fr"}},
		{name: "username", key: "Username", value: "jean.dupont", want: Config{Username: "jean.dupont"}},
		{name: "output", key: "output", value: "yaml", want: Config{Output: "yaml"}},
		{name: "invalid output", key: "output", value: "xml", wantErr: constants.ErrUnknownOutputFormat},
		{name: "timeout", key: "timeout", value: "45s", want: Config{Timeout: "45s"}},
		{name: "password is never stored", key: "password", value: "secret", wantErr: constants.ErrUnknownConfigKey},
	}

	for _, testCase := range tests {

		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			config := &Config{}

			err := setConfigValue(config, testCase.key, testCase.value)
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, *config)
		})
	}
}

func TestSetConfigValue_InvalidTimeout(t *testing.T) {
	t.Parallel()

	err := setConfigValue(&Config{}, "timeout", "soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid timeout "soon"`)
}

func TestSetConfigValue_Clear(t *testing.T) {
	t.Parallel()

	config := &Config{Host: "monlycee.net", Output: "json"}

	require.NoError(t, setConfigValue(config, "host", ""))
	require.NoError(t, setConfigValue(config, "output", ""))
	assert.Equal(t, Config{}, *config)
}

func TestConfigFileRoundTrip(t *testing.T) {
	t.Parallel()

	configFile := filepath.Join(t.TempDir(), ".ent", "config.yml")
	config := &Config{Host: "monlycee.net", Username: "jean.dupont", Timeout: "1m0s"}

	require.NoError(t, writeConfigFile(configFile, config))

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Equal(t, "host: monlycee.net\nusername: jean.dupont\ntimeout: 1m0s\n", string(data))

	loaded, err := readConfigFile(configFile)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestReadConfigFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := readConfigFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, NewVersionCommand("1.2.3", "abc123", "2026-10-19"))
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestRender(t *testing.T) {
	t.Parallel()

	data := VersionInfo{Version: "1.2.3", Commit: "abc123", Built: "today"}

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer

		require.NoError(t, render(&out, constants.FormatJSON, data, nil))
		assert.JSONEq(t, `{"version":"1.2.3","commit":"abc123","built":"today"}`, out.String())
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer

		require.NoError(t, render(&out, constants.FormatYAML, data, nil))
		assert.Equal(t, "version: 1.2.3\ncommit: abc123\nbuilt: today\n", out.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer

		err := render(&out, "xml", data, nil)
		require.ErrorIs(t, err, constants.ErrUnknownOutputFormat)
		assert.Empty(t, out.String())
	})
}
