package telegram

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	pkgerrors "saleor-tma-bot/pkg/errors"
	"saleor-tma-bot/pkg/logger"
	"saleor-tma-bot/pkg/metrics"
)

const ParseModeMarkdown = tgbotapi.ModeMarkdown

// API is the part of *tgbotapi.BotAPI the bot talks through.
type API interface {
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Button opens the Mini-App at URL.
type Button struct {
	Text string
	URL  string
}

// Options are the formatting flags of an outbound message.
type Options struct {
	ParseMode string
	Buttons   []Button
}

type inlineKeyboard struct {
	InlineKeyboard [][]webAppButton `json:"inline_keyboard"`
}

type webAppButton struct {
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

// Notifier delivers chat messages with a single attempt.
type Notifier struct {
	api     API
	logg    *logger.Logger
	metrics *metrics.Bot
}

func NewNotifier(api API, logg *logger.Logger, m *metrics.Bot) *Notifier {
	return &Notifier{api: api, logg: logg, metrics: m}
}

// NewBotAPI authorizes the token against the Bot API using client.
func NewBotAPI(token string, client *http.Client) (*tgbotapi.BotAPI, error) {
	if client == nil {
		client = http.DefaultClient
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("authorize telegram bot: %w", err)
	}
	return bot, nil
}

// Notify sends text to recipientID. Any transport failure is logged and returned
// as a DELIVERY_FAILURE error wrapping the cause.
func (n *Notifier) Notify(ctx context.Context, recipientID int64, text string, opts Options) error {
	if n.logg != nil {
		ctx = n.logg.WithChatID(ctx, recipientID)
	}
	if recipientID == 0 {
		return n.fail(ctx, pkgerrors.New(pkgerrors.CodeDeliveryFailure, "recipient id is required"))
	}

	params := make(tgbotapi.Params)
	params.AddNonZero64("chat_id", recipientID)
	params["text"] = text
	params.AddNonEmpty("parse_mode", opts.ParseMode)
	if len(opts.Buttons) > 0 {
		if err := params.AddInterface("reply_markup", keyboard(opts.Buttons)); err != nil {
			return n.fail(ctx, pkgerrors.Wrap(pkgerrors.CodeDeliveryFailure, err, "encode reply markup"))
		}
	}

	if _, err := n.api.MakeRequest("sendMessage", params); err != nil {
		return n.fail(ctx, pkgerrors.Wrap(pkgerrors.CodeDeliveryFailure, err, "send message failed"))
	}

	n.metrics.IncNotification("success")
	if n.logg != nil {
		n.logg.Debug(ctx, "telegram.message_sent")
	}
	return nil
}

func (n *Notifier) fail(ctx context.Context, err *pkgerrors.Error) error {
	n.metrics.IncNotification("failure")
	if n.logg != nil {
		n.logg.Error(ctx, "telegram.send_failed", err)
	}
	return err
}

// one button per row
func keyboard(buttons []Button) inlineKeyboard {
	rows := make([][]webAppButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []webAppButton{{Text: b.Text, WebApp: webAppInfo{URL: b.URL}}})
	}
	return inlineKeyboard{InlineKeyboard: rows}
}
