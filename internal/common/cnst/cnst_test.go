package cnst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppConstants(t *testing.T) {
	assert.Equal(t, "console", AppName)
	assert.Equal(t, "console", CommandName)
	assert.Equal(t, "console.yaml", ConsoleYaml)
}

func TestI18nConstants(t *testing.T) {
	t.Run("language constants", func(t *testing.T) {
		assert.Equal(t, "en", LangEN)
		assert.Equal(t, "ar", LangAR)
		assert.Equal(t, LangAR, LangDefault)
	})

	t.Run("header and context key constants", func(t *testing.T) {
		assert.Equal(t, "X-Lang", XLang)
		assert.Equal(t, "translator", CtxKeyTranslator)
		assert.Equal(t, "session", CtxKeySession)
		assert.Equal(t, "user", CtxKeyUser)
	})
}

func TestGatewayExclusivity(t *testing.T) {
	assert.Equal(t, GatewayStripe, GatewayPayTabs.ExclusiveWith())
	assert.Equal(t, GatewayPayTabs, GatewayStripe.ExclusiveWith())
	assert.Equal(t, GatewayName(""), GatewayName("tap").ExclusiveWith())
	assert.Equal(t, "paytabs", GatewayPayTabs.String())
}

func TestPreferenceKeys(t *testing.T) {
	assert.Equal(t, "backup_schedule", PrefBackupSchedule)
	assert.Equal(t, "backup_last_run", PrefBackupLastRun)
	assert.Equal(t, "settings_tab", PrefSettingsTab)
	assert.Equal(t, "@scheduler", SchedulerUser)
}
