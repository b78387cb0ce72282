package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, wireNone, versionCmd.Annotations[wiringAnnotation])
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()
	SetVersion("1.2.3")

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "convivio version 1.2.3")
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()
	version = "dev"

	SetVersion("")
	assert.Equal(t, "dev", version)
}

func TestVersionCmd_SkipsWiring(t *testing.T) {
	oldSettings, oldSettingsService := appSettings, settingsService
	defer func() { appSettings, settingsService = oldSettings, oldSettingsService }()
	appSettings, settingsService = nil, nil

	_, err := execute(t, "version", "--config-dir", t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, settingsService)
	assert.Nil(t, appSettings)
}
