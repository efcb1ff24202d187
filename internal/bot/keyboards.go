package bot

import tele "gopkg.in/telebot.v3"

// Main menu button labels. OnText routes these to the same handlers as
// the slash commands.
const (
	btnSleep          = "😴 Sleep"
	btnWake           = "🌅 Wake up"
	btnStats          = "📊 Stats"
	btnSetReminder    = "⏰ Set reminder"
	btnRemoveReminder = "🔕 Remove reminder"
	btnSleepGoal      = "🎯 Sleep goal"
	btnWakeTime       = "🌄 Wake-up time"
	btnRateSleep      = "⭐️ Rate sleep"
	btnLogMood        = "🥳 Mood"
	btnSleepTips      = "💡 Sleep tips"
	btnWeather        = "🌤 Weather advice"
	btnExportData     = "🗃 Export data"
	btnDeleteData     = "❌ Delete my data"
)

// mainMenu is the persistent reply keyboard.
func mainMenu() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true}
	m.Reply(
		m.Row(m.Text(btnSleep), m.Text(btnWake), m.Text(btnStats)),
		m.Row(m.Text(btnSetReminder), m.Text(btnRemoveReminder)),
		m.Row(m.Text(btnSleepGoal), m.Text(btnWakeTime)),
		m.Row(m.Text(btnRateSleep), m.Text(btnLogMood)),
		m.Row(m.Text(btnSleepTips), m.Text(btnWeather)),
		m.Row(m.Text(btnExportData), m.Text(btnDeleteData)),
	)
	return m
}

// locationRequest asks the user to share their location so the city and
// timezone can be resolved.
func locationRequest() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	m.Reply(m.Row(m.Location("📍 Share my location")))
	return m
}

// forceReply marks the next message as the answer to an open dialog.
func forceReply() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{ForceReply: true}
}
