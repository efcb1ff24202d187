package bot

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// Notifier delivers evaluator notifications through the Telegram bot.
type Notifier struct {
	tb *tele.Bot
}

func (n *Notifier) Send(ctx context.Context, userID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := n.tb.Send(&tele.User{ID: userID}, text); err != nil {
		return fmt.Errorf("sending telegram message to %d: %w", userID, err)
	}
	return nil
}
