package bot

import (
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/akozyreva/somnus/internal/dialog"
	"github.com/akozyreva/somnus/internal/service"
	"github.com/akozyreva/somnus/internal/tz"
	"github.com/akozyreva/somnus/internal/weather"
)

// Options holds the collaborators a Bot is wired with. Weather may be
// nil when no API key is configured; weather features degrade to an
// explanatory message.
type Options struct {
	Token       string
	PollTimeout time.Duration
	Dialogs     *dialog.Dispatcher
	Profile     service.ProfileService
	Sleep       service.SleepService
	Data        service.DataService
	Weather     *weather.Client
	Timezones   *tz.Resolver
	Logger      *slog.Logger
}

// Bot is the Telegram transport: command routing, keyboards, and dialog
// hand-off. All sleep semantics live in the services it calls.
type Bot struct {
	tb      *tele.Bot
	dialogs *dialog.Dispatcher
	profile service.ProfileService
	sleep   service.SleepService
	data    service.DataService
	weather *weather.Client
	tzres   *tz.Resolver
	logger  *slog.Logger
}

// New connects to Telegram and registers all handlers.
func New(opts Options) (*Bot, error) {
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	tb, err := tele.NewBot(tele.Settings{
		Token:  opts.Token,
		Poller: &tele.LongPoller{Timeout: opts.PollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}

	b := &Bot{
		tb:      tb,
		dialogs: opts.Dialogs,
		profile: opts.Profile,
		sleep:   opts.Sleep,
		data:    opts.Data,
		weather: opts.Weather,
		tzres:   opts.Timezones,
		logger:  opts.Logger,
	}
	b.registerHandlers()
	return b, nil
}

// Notifier returns the outbound message channel used by the reminder
// evaluator.
func (b *Bot) Notifier() *Notifier {
	return &Notifier{tb: b.tb}
}

// Start begins long polling. Blocks until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("bot started")
	b.tb.Start()
}

// Stop terminates long polling.
func (b *Bot) Stop() {
	b.tb.Stop()
	b.logger.Info("bot stopped")
}

func (b *Bot) registerHandlers() {
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/menu", b.handleMenu)
	b.tb.Handle("/sleep", b.handleSleep)
	b.tb.Handle("/wake", b.handleWake)
	b.tb.Handle("/stats", b.handleStats)
	b.tb.Handle("/set_reminder", b.handleSetReminder)
	b.tb.Handle("/remove_reminder", b.handleRemoveReminder)
	b.tb.Handle("/set_sleep_goal", b.handleSetSleepGoal)
	b.tb.Handle("/set_wake_time", b.handleSetWakeTime)
	b.tb.Handle("/rate_sleep", b.handleRateSleep)
	b.tb.Handle("/log_mood", b.handleLogMood)
	b.tb.Handle("/sleep_tips", b.handleSleepTips)
	b.tb.Handle("/weather_advice", b.handleWeatherAdvice)
	b.tb.Handle("/export_data", b.handleExportData)
	b.tb.Handle("/delete_my_data", b.handleDeleteMyData)
	b.tb.Handle(tele.OnLocation, b.handleLocation)
	b.tb.Handle(tele.OnText, b.handleText)
}
