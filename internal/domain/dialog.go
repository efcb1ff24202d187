package domain

// DialogState identifies which single piece of free-text input is
// currently expected from a user. The zero value means no dialog is open.
type DialogState int

const (
	DialogNone DialogState = iota
	DialogAwaitingReminderTime
	DialogAwaitingSleepQuality
	DialogAwaitingSleepGoal
	DialogAwaitingWakeTime
	DialogAwaitingMood
	DialogAwaitingDeleteConfirm
)

func (s DialogState) String() string {
	switch s {
	case DialogNone:
		return "none"
	case DialogAwaitingReminderTime:
		return "awaiting_reminder_time"
	case DialogAwaitingSleepQuality:
		return "awaiting_sleep_quality"
	case DialogAwaitingSleepGoal:
		return "awaiting_sleep_goal"
	case DialogAwaitingWakeTime:
		return "awaiting_wake_time"
	case DialogAwaitingMood:
		return "awaiting_mood"
	case DialogAwaitingDeleteConfirm:
		return "awaiting_delete_confirm"
	default:
		return "unknown"
	}
}
