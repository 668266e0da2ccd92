package bot

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot glues the Telegram transport to the dispatcher. Long-polling by
// default; when a webhook URL is configured the webhook handler is exposed
// via Webhook() so the process HTTP server can mount it next to the
// liveness route.
type Bot struct {
	api        *tele.Bot
	dispatcher *Dispatcher
	webhook    *tele.Webhook // nil in long-poll mode
	log        *zap.Logger
}

type Config struct {
	Token      string
	WebhookURL string
}

func New(cfg Config, d *Dispatcher, log *zap.Logger) (*Bot, error) {
	pref := tele.Settings{Token: cfg.Token}

	var wh *tele.Webhook
	if cfg.WebhookURL != "" {
		// Listen stays empty: the poller only registers the webhook with
		// Telegram, serving is done on the shared listener.
		wh = &tele.Webhook{
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.WebhookURL},
		}
		pref.Poller = wh
	} else {
		pref.Poller = &tele.LongPoller{Timeout: 10 * time.Second}
	}

	api, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	b := &Bot{api: api, dispatcher: d, webhook: wh, log: log}
	b.register()
	return b, nil
}

// Webhook returns the inbound update handler, or nil in long-poll mode.
func (b *Bot) Webhook() http.Handler {
	if b.webhook == nil {
		return nil
	}
	return b.webhook
}

func (b *Bot) Start() {
	b.log.Info("bot online", zap.String("username", b.api.Me.Username))
	b.api.Start()
}

func (b *Bot) Stop() {
	b.api.Stop()
}

func (b *Bot) register() {
	// Every text message, commands included, funnels through the parser so
	// unknown commands land on the help reply.
	b.api.Handle(tele.OnText, b.handleText)
}

func (b *Bot) handleText(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Text == "" {
		return nil
	}
	b.reply(c, b.dispatcher.Handle(context.Background(), msg.Text))
	return nil
}

// reply is best-effort: delivery failures are logged and swallowed so the
// inbound update is always acknowledged.
func (b *Bot) reply(c tele.Context, text string) {
	if err := c.Send(text); err != nil {
		b.log.Error("telegram send failed", zap.Error(err))
	}
}
