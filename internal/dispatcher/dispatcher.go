package dispatcher

import (
	"context"
	"strings"
	"time"

	"saleor-tma-bot/internal/catalog"
	"saleor-tma-bot/internal/orders"
	"saleor-tma-bot/internal/telegram"
	"saleor-tma-bot/pkg/logger"
	"saleor-tma-bot/pkg/metrics"
)

type Notifier interface {
	Notify(ctx context.Context, recipientID int64, text string, opts telegram.Options) error
}

type OrderFormatter interface {
	FormatOrder(orderData string, restaurantID catalog.ID, comment string) (orders.Receipt, error)
}

// Result is the Mini-App API answer.
type Result struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type Params struct {
	Notifier    Notifier
	Formatter   OrderFormatter
	BaseURL     string
	WebviewURL  string
	AdminChatID int64
	Logger      *logger.Logger
	Metrics     *metrics.Bot
	Now         func() time.Time
}

// Dispatcher routes each inbound event to exactly one handler. It keeps no state
// between events.
type Dispatcher struct {
	notifier    Notifier
	formatter   OrderFormatter
	baseURL     string
	webviewURL  string
	adminChatID int64
	logg        *logger.Logger
	metrics     *metrics.Bot
	now         func() time.Time
}

func New(p Params) *Dispatcher {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	logg := p.Logger
	if logg == nil {
		logg = logger.Discard()
	}
	return &Dispatcher{
		notifier:    p.Notifier,
		formatter:   p.Formatter,
		baseURL:     strings.TrimRight(p.BaseURL, "/"),
		webviewURL:  p.WebviewURL,
		adminChatID: p.AdminChatID,
		logg:        logg,
		metrics:     p.Metrics,
		now:         now,
	}
}

// HandleUpdate dispatches every event of a webhook update in order and stops at the
// first failure.
func (d *Dispatcher) HandleUpdate(ctx context.Context, u Update) error {
	events, err := u.Events()
	if err != nil {
		d.metrics.IncDispatch("mini_app", "invalid")
		return err
	}
	for _, ev := range events {
		if _, err := d.Dispatch(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (Result, error) {
	switch e := ev.(type) {
	case ChatCommand:
		return Result{OK: true}, d.handleCommand(ctx, e)
	case MiniAppSubmission:
		return d.HandleSubmission(ctx, e.Submission)
	default:
		return Result{OK: false, Error: UnknownMethodError}, nil
	}
}

func (d *Dispatcher) handleCommand(ctx context.Context, cmd ChatCommand) error {
	ctx = d.logg.WithChatID(ctx, cmd.ChatID)

	var err error
	switch cmd.Text {
	case "/start", "/order":
		err = d.notifier.Notify(ctx, cmd.ChatID, StartText, telegram.Options{
			ParseMode: telegram.ParseModeMarkdown,
			Buttons:   []telegram.Button{{Text: orderButtonText, URL: d.baseURL}},
		})
	case "/test":
		err = d.notifier.Notify(ctx, cmd.ChatID, TestText, telegram.Options{
			ParseMode: telegram.ParseModeMarkdown,
			Buttons:   []telegram.Button{{Text: testButtonText, URL: d.baseURL + testPath}},
		})
	case "/help":
		err = d.notifier.Notify(ctx, cmd.ChatID, HelpText, telegram.Options{})
	case "/ping":
		err = d.notifier.Notify(ctx, cmd.ChatID, PingText, telegram.Options{ParseMode: telegram.ParseModeMarkdown})
	default:
		d.metrics.IncDispatch("command", "ignored")
		return nil
	}

	d.record("command", err)
	return err
}

// HandleSubmission runs one Mini-App method. Unknown methods answer
// {ok:false,error:"Unknown method"} without sending anything.
func (d *Dispatcher) HandleSubmission(ctx context.Context, sub Submission) (Result, error) {
	ctx = d.logg.WithSubmission(ctx, sub.Recipient(), sub.Method())

	switch s := sub.(type) {
	case MakeOrder:
		res, err := d.makeOrder(ctx, s)
		d.record("make_order", err)
		return res, err
	case CheckInitData:
		// TODO: verify the init data hash against the bot token before trusting user_id.
		d.metrics.IncDispatch("check_init_data", "handled")
		return Result{OK: true}, nil
	case SendMessage:
		res, err := d.sendGreeting(ctx, s)
		d.record("send_message", err)
		return res, err
	default:
		d.metrics.IncDispatch("mini_app", "unknown_method")
		d.logg.Warn(ctx, "dispatch.unknown_method")
		return Result{OK: false, Error: UnknownMethodError}, nil
	}
}

func (d *Dispatcher) makeOrder(ctx context.Context, s MakeOrder) (Result, error) {
	receipt, err := d.formatter.FormatOrder(s.OrderData, s.RestaurantID, s.Comment)
	if err != nil {
		return Result{}, err
	}

	order := orders.NewOrder(s.Recipient(), receipt, d.now())
	ctx = d.logg.WithFields(ctx, map[string]any{
		"order_id":    order.ID,
		"lines":       len(receipt.Lines),
		"total_minor": receipt.Total,
		"currency":    receipt.Currency,
		"restaurant":  receipt.Restaurant,
	})

	if err := d.notifier.Notify(ctx, s.Recipient(), OrderConfirmation(receipt), telegram.Options{
		ParseMode: telegram.ParseModeMarkdown,
	}); err != nil {
		return Result{}, err
	}
	d.logg.Info(ctx, "order.placed")

	d.notifyAdmin(ctx, order)
	return Result{OK: true}, nil
}

// notifyAdmin is best effort; its failure never reaches the customer.
func (d *Dispatcher) notifyAdmin(ctx context.Context, order orders.Order) {
	if d.adminChatID == 0 {
		return
	}
	if err := d.notifier.Notify(ctx, d.adminChatID, adminOrderText(order), telegram.Options{}); err != nil {
		d.logg.Error(d.logg.WithField(ctx, "admin_chat_id", d.adminChatID), "order.admin_copy_failed", err)
	}
}

func (d *Dispatcher) sendGreeting(ctx context.Context, s SendMessage) (Result, error) {
	opts := telegram.Options{ParseMode: telegram.ParseModeMarkdown}
	if s.WithWebview {
		opts.Buttons = []telegram.Button{{Text: webviewButtonText, URL: d.webviewURL}}
	}
	if err := d.notifier.Notify(ctx, s.Recipient(), GreetingText, opts); err != nil {
		return Result{}, err
	}
	return Result{OK: true}, nil
}

func (d *Dispatcher) record(kind string, err error) {
	if err != nil {
		d.metrics.IncDispatch(kind, "failed")
		return
	}
	d.metrics.IncDispatch(kind, "handled")
}
