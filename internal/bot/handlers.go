package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/akozyreva/somnus/internal/domain"
	"github.com/akozyreva/somnus/internal/repository"
	"github.com/akozyreva/somnus/internal/service"
	"github.com/akozyreva/somnus/internal/tz"
)

const handlerTimeout = 10 * time.Second

// errorReply is the generic apology for collaborator failures; internal
// detail stays in the logs.
const errorReply = "Sorry, something went wrong. Please try again."

func handlerContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), handlerTimeout)
}

// register upserts the sender so every command works without an explicit
// /start first.
func (b *Bot) register(ctx context.Context, c tele.Context) {
	sender := c.Sender()
	if sender == nil {
		return
	}
	u := &domain.User{
		ID:        sender.ID,
		Username:  sender.Username,
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
	}
	if err := b.profile.Register(ctx, u); err != nil {
		b.logger.Error("registering user", "user_id", sender.ID, "error", err)
	}
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()
	b.register(ctx, c)

	user, err := b.profile.Get(ctx, c.Sender().ID)
	if err != nil {
		b.logger.Error("loading user", "user_id", c.Sender().ID, "error", err)
		return c.Send(errorReply)
	}
	if !user.HasLocation && user.Timezone == "" {
		return c.Send(
			"👋 Hi! I'm a sleep tracking bot.\n\nPlease share your location so I can give you timezone-aware reminders and weather advice.",
			locationRequest())
	}
	return c.Send(
		"👋 Hi! I'm a sleep tracking bot.\n\nChoose an action from the menu below:",
		mainMenu())
}

func (b *Bot) handleMenu(c tele.Context) error {
	return c.Send("Choose an action:", mainMenu())
}

func (b *Bot) handleSleep(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()
	b.register(ctx, c)

	now := time.Now().UTC()
	created, err := b.sleep.MarkSleep(ctx, c.Sender().ID, now)
	if err != nil {
		b.logger.Error("marking sleep", "user_id", c.Sender().ID, "error", err)
		return c.Send(errorReply, mainMenu())
	}

	stamp := b.localTime(ctx, c.Sender().ID, now).Format("2006-01-02 15:04")
	if !created {
		return c.Send(fmt.Sprintf("🌙 You were already marked asleep; bedtime moved to %s.", stamp), mainMenu())
	}
	return c.Send(fmt.Sprintf("🌙 Bedtime recorded: %s. Sleep well!", stamp), mainMenu())
}

func (b *Bot) handleWake(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()
	b.register(ctx, c)

	now := time.Now().UTC()
	err := b.sleep.MarkWake(ctx, c.Sender().ID, now)
	if errors.Is(err, service.ErrNoOpenRecord) {
		return c.Send("❗️ You have no sleep record in progress. Use /sleep to start one.", mainMenu())
	}
	if err != nil {
		b.logger.Error("marking wake", "user_id", c.Sender().ID, "error", err)
		return c.Send(errorReply, mainMenu())
	}

	stamp := b.localTime(ctx, c.Sender().ID, now).Format("2006-01-02 15:04")
	return c.Send(fmt.Sprintf("☀️ Wake-up recorded: %s. Good morning!", stamp), mainMenu())
}

func (b *Bot) handleStats(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()
	b.register(ctx, c)

	rec, err := b.sleep.LastRecord(ctx, c.Sender().ID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Send("You have no sleep records yet. Use /sleep when you go to bed.", mainMenu())
	}
	if err != nil {
		b.logger.Error("loading last record", "user_id", c.Sender().ID, "error", err)
		return c.Send(errorReply, mainMenu())
	}

	loc := b.location(ctx, c.Sender().ID)
	from := rec.SleepTime.In(loc).Format("2006-01-02 15:04")
	if rec.Open() {
		return c.Send(fmt.Sprintf("🛌 Your current sleep record:\nSince %s — not awake yet.", from), mainMenu())
	}
	until := rec.WakeTime.In(loc).Format("2006-01-02 15:04")
	return c.Send(fmt.Sprintf("🛌 Your last sleep record:\nFrom %s until %s — %s.",
		from, until, rec.Duration().Round(time.Minute)), mainMenu())
}

func (b *Bot) handleSetReminder(c tele.Context) error {
	return b.beginDialog(c, domain.DialogAwaitingReminderTime)
}

func (b *Bot) handleRemoveReminder(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()
	b.register(ctx, c)

	if err := b.profile.RemoveReminder(ctx, c.Sender().ID); err != nil {
		b.logger.Error("removing reminder", "user_id", c.Sender().ID, "error", err)
		return c.Send(errorReply, mainMenu())
	}
	return c.Send("🔕 Reminder removed.", mainMenu())
}

func (b *Bot) handleSetSleepGoal(c tele.Context) error {
	return b.beginDialog(c, domain.DialogAwaitingSleepGoal)
}

func (b *Bot) handleSetWakeTime(c tele.Context) error {
	return b.beginDialog(c, domain.DialogAwaitingWakeTime)
}

func (b *Bot) handleRateSleep(c tele.Context) error {
	return b.beginDialog(c, domain.DialogAwaitingSleepQuality)
}

func (b *Bot) handleLogMood(c tele.Context) error {
	return b.beginDialog(c, domain.DialogAwaitingMood)
}

func (b *Bot) handleDeleteMyData(c tele.Context) error {
	return b.beginDialog(c, domain.DialogAwaitingDeleteConfirm)
}

func (b *Bot) handleSleepTips(c tele.Context) error {
	return c.Send("💡 A tip for better sleep:\n\n"+randomTip(), mainMenu())
}

func (b *Bot) handleWeatherAdvice(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()
	b.register(ctx, c)

	if b.weather == nil {
		return c.Send("Weather advice is not configured on this bot.", mainMenu())
	}

	user, err := b.profile.Get(ctx, c.Sender().ID)
	if err != nil {
		b.logger.Error("loading user", "user_id", c.Sender().ID, "error", err)
		return c.Send(errorReply, mainMenu())
	}
	if user.CityName == "" {
		return c.Send("I don't know your city yet. Please share your location first.", locationRequest())
	}

	report, err := b.weather.Advise(ctx, user.CityName)
	if err != nil {
		b.logger.Error("fetching weather", "user_id", user.ID, "city", user.CityName, "error", err)
		return c.Send("Sorry, I couldn't fetch the weather right now. Please try again later.", mainMenu())
	}
	return c.Send(report, mainMenu())
}

func (b *Bot) handleExportData(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()
	b.register(ctx, c)

	csvData, err := b.data.ExportCSV(ctx, c.Sender().ID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Send("You have no data to export yet.", mainMenu())
	}
	if err != nil {
		b.logger.Error("exporting data", "user_id", c.Sender().ID, "error", err)
		return c.Send(errorReply, mainMenu())
	}

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(csvData)),
		FileName: fmt.Sprintf("sleep_data_%d.csv", c.Sender().ID),
		MIME:     "text/csv",
	}
	return c.Send(doc)
}

func (b *Bot) handleLocation(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()
	b.register(ctx, c)

	loc := c.Message().Location
	if loc == nil {
		return nil
	}
	coords := &tz.Coordinates{Lat: float64(loc.Lat), Lng: float64(loc.Lng)}

	zone, err := b.tzres.Resolve(ctx, c.Sender().ID, coords)
	if err != nil {
		b.logger.Error("resolving timezone", "user_id", c.Sender().ID, "error", err)
	}

	var city string
	if b.weather != nil {
		city, err = b.weather.CityFor(ctx, coords.Lat, coords.Lng)
		if err != nil {
			b.logger.Warn("reverse geocoding failed", "user_id", c.Sender().ID, "error", err)
		} else if err := b.profile.SetCity(ctx, c.Sender().ID, city); err != nil {
			b.logger.Error("saving city", "user_id", c.Sender().ID, "error", err)
			city = ""
		}
	}

	switch {
	case city != "":
		return c.Send(fmt.Sprintf("Your city: %s. Thanks!", city), mainMenu())
	case zone != "":
		return c.Send(fmt.Sprintf("Your timezone: %s. Thanks!", zone), mainMenu())
	default:
		return c.Send("Sorry, I couldn't determine your location. Please try again.", locationRequest())
	}
}

// handleText receives every non-command text message: either the answer
// to an open dialog, or a tap on a menu button.
func (b *Bot) handleText(c tele.Context) error {
	ctx, cancel := handlerContext()
	defer cancel()
	b.register(ctx, c)

	out, err := b.dialogs.Dispatch(ctx, c.Sender().ID, c.Text())
	if err != nil {
		b.logger.Error("dialog dispatch", "user_id", c.Sender().ID, "error", err)
	}
	if out.Handled {
		if b.dialogs.Pending(c.Sender().ID) {
			return c.Send(out.Reply, forceReply())
		}
		return c.Send(out.Reply, mainMenu())
	}

	switch c.Text() {
	case btnSleep:
		return b.handleSleep(c)
	case btnWake:
		return b.handleWake(c)
	case btnStats:
		return b.handleStats(c)
	case btnSetReminder:
		return b.handleSetReminder(c)
	case btnRemoveReminder:
		return b.handleRemoveReminder(c)
	case btnSleepGoal:
		return b.handleSetSleepGoal(c)
	case btnWakeTime:
		return b.handleSetWakeTime(c)
	case btnRateSleep:
		return b.handleRateSleep(c)
	case btnLogMood:
		return b.handleLogMood(c)
	case btnSleepTips:
		return b.handleSleepTips(c)
	case btnWeather:
		return b.handleWeatherAdvice(c)
	case btnExportData:
		return b.handleExportData(c)
	case btnDeleteData:
		return b.handleDeleteMyData(c)
	default:
		return c.Send("Please choose an action from the menu.", mainMenu())
	}
}

func (b *Bot) beginDialog(c tele.Context, state domain.DialogState) error {
	ctx, cancel := handlerContext()
	defer cancel()
	b.register(ctx, c)

	prompt := b.dialogs.Begin(c.Sender().ID, state)
	return c.Send(prompt, forceReply())
}

func (b *Bot) location(ctx context.Context, userID int64) *time.Location {
	user, err := b.profile.Get(ctx, userID)
	if err != nil {
		return time.UTC
	}
	return b.tzres.Location(user)
}

func (b *Bot) localTime(ctx context.Context, userID int64, t time.Time) time.Time {
	return t.In(b.location(ctx, userID))
}
