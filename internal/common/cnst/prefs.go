package cnst

// Preference keys persisted in the console's own store. The key set is
// fixed; handlers never write keys outside this list.
const (
	PrefBackupSchedule = "backup_schedule"
	PrefBackupLastRun  = "backup_last_run"
	PrefSettingsTab    = "settings_tab"
)

// SchedulerUser is the reserved username owning scheduler-written
// preferences.
const SchedulerUser = "@scheduler"
