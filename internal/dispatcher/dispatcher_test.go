package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleor-tma-bot/internal/catalog"
	"saleor-tma-bot/internal/orders"
	"saleor-tma-bot/internal/telegram"
	pkgerrors "saleor-tma-bot/pkg/errors"
)

type sentMessage struct {
	recipient int64
	text      string
	opts      telegram.Options
}

type fakeNotifier struct {
	sent   []sentMessage
	failTo map[int64]error
}

func (f *fakeNotifier) Notify(_ context.Context, recipientID int64, text string, opts telegram.Options) error {
	if err, ok := f.failTo[recipientID]; ok {
		return err
	}
	f.sent = append(f.sent, sentMessage{recipient: recipientID, text: text, opts: opts})
	return nil
}

func newTestDispatcher(n *fakeNotifier, adminChatID int64) *Dispatcher {
	resolver := catalog.NewResolver(catalog.ResolverParams{Fallback: catalog.Fallback()})
	return New(Params{
		Notifier:    n,
		Formatter:   orders.NewFormatter(resolver),
		BaseURL:     "https://tma.example.com/",
		WebviewURL:  "https://example.com",
		AdminChatID: adminChatID,
		Now: func() time.Time {
			return time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
		},
	})
}

func commandUpdate(chatID int64, text string) Update {
	return Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: chatID},
		Text: text,
	}}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantText  string
		parseMode string
		buttons   []telegram.Button
	}{
		{
			name:      "start",
			text:      "/start",
			wantText:  StartText,
			parseMode: telegram.ParseModeMarkdown,
			buttons:   []telegram.Button{{Text: "Order Food", URL: "https://tma.example.com"}},
		},
		{
			name:      "order",
			text:      "/order",
			wantText:  StartText,
			parseMode: telegram.ParseModeMarkdown,
			buttons:   []telegram.Button{{Text: "Order Food", URL: "https://tma.example.com"}},
		},
		{
			name:      "test",
			text:      "/test",
			wantText:  TestText,
			parseMode: telegram.ParseModeMarkdown,
			buttons:   []telegram.Button{{Text: "Test", URL: "https://tma.example.com/demo"}},
		},
		{
			name:     "help",
			text:     "/help",
			wantText: HelpText,
		},
		{
			name:      "ping",
			text:      "/ping",
			wantText:  "`Pong!`",
			parseMode: telegram.ParseModeMarkdown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &fakeNotifier{}
			d := newTestDispatcher(n, 0)

			require.NoError(t, d.HandleUpdate(context.Background(), commandUpdate(7, tt.text)))
			require.Len(t, n.sent, 1)
			assert.Equal(t, int64(7), n.sent[0].recipient)
			assert.Equal(t, tt.wantText, n.sent[0].text)
			assert.Equal(t, tt.parseMode, n.sent[0].opts.ParseMode)
			assert.Equal(t, tt.buttons, n.sent[0].opts.Buttons)
		})
	}
}

func TestUnrecognisedCommandIsIgnored(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n, 0)

	require.NoError(t, d.HandleUpdate(context.Background(), commandUpdate(7, "hello there")))
	require.NoError(t, d.HandleUpdate(context.Background(), commandUpdate(7, "/start now")))
	assert.Empty(t, n.sent)
}

func TestEmptyUpdateDoesNothing(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n, 0)

	require.NoError(t, d.HandleUpdate(context.Background(), Update{UpdateID: 1}))
	assert.Empty(t, n.sent)
}

func TestMakeOrderSendsConfirmation(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n, 0)

	res, err := d.HandleSubmission(context.Background(), MakeOrder{
		UserID:    42,
		OrderData: `[{"id":1,"count":2},{"id":"2","count":1}]`,
	})
	require.NoError(t, err)
	assert.True(t, res.OK)

	require.Len(t, n.sent, 1)
	assert.Equal(t, int64(42), n.sent[0].recipient)
	assert.Equal(t, telegram.ParseModeMarkdown, n.sent[0].opts.ParseMode)
	assert.Equal(t,
		"Your order has been placed successfully! 🍟\n\nYour order is:\n`2x Burger $4.99\n1x Fries $1.49\n`\nYour order will be delivered to you in 30 minutes. 🚚",
		n.sent[0].text)
}

func TestMakeOrderWithNothingResolvable(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n, 0)

	res, err := d.HandleSubmission(context.Background(), MakeOrder{UserID: 42, OrderData: `[{"id":999,"count":1}]`})
	require.NoError(t, err)
	assert.True(t, res.OK)
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0].text, "`Nothing`")
}

func TestMakeOrderMalformedPayload(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n, 0)

	_, err := d.HandleSubmission(context.Background(), MakeOrder{UserID: 42, OrderData: "not json"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeMalformedPayload))
	assert.Empty(t, n.sent)
}

func TestMakeOrderPropagatesDeliveryFailure(t *testing.T) {
	deliveryErr := pkgerrors.New(pkgerrors.CodeDeliveryFailure, "telegram unavailable")
	n := &fakeNotifier{failTo: map[int64]error{42: deliveryErr}}
	d := newTestDispatcher(n, 0)

	_, err := d.HandleSubmission(context.Background(), MakeOrder{UserID: 42, OrderData: `[{"id":1,"count":1}]`})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDeliveryFailure))
}

func TestMakeOrderSendsAdminCopy(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n, -100500)

	res, err := d.HandleSubmission(context.Background(), MakeOrder{
		UserID:       42,
		OrderData:    `[{"id":5,"count":1}]`,
		Comment:      "no onions",
		RestaurantID: "3",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)

	require.Len(t, n.sent, 2)
	admin := n.sent[1]
	assert.Equal(t, int64(-100500), admin.recipient)
	assert.Empty(t, admin.opts.ParseMode)
	assert.Contains(t, admin.text, "Number: 20260314123000")
	assert.Contains(t, admin.text, "Customer: 42")
	assert.Contains(t, admin.text, "Restaurant: Pizza House")
	assert.Contains(t, admin.text, "1x Pizza $7.99")
	assert.Contains(t, admin.text, "Total: $7.99")
	assert.Contains(t, admin.text, "Comment: no onions")
	assert.Contains(t, admin.text, "Time: 12:30 14.03.2026")
}

func TestAdminCopyFailureDoesNotFailOrder(t *testing.T) {
	n := &fakeNotifier{failTo: map[int64]error{-1: errors.New("chat not found")}}
	d := newTestDispatcher(n, -1)

	res, err := d.HandleSubmission(context.Background(), MakeOrder{UserID: 42, OrderData: `[{"id":1,"count":1}]`})
	require.NoError(t, err)
	assert.True(t, res.OK)
	require.Len(t, n.sent, 1)
	assert.Equal(t, int64(42), n.sent[0].recipient)
}

func TestCheckInitDataAlwaysOK(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n, 0)

	res, err := d.HandleSubmission(context.Background(), CheckInitData{UserID: 42, InitData: json.RawMessage(`"query_id=1"`)})
	require.NoError(t, err)
	assert.Equal(t, Result{OK: true}, res)
	assert.Empty(t, n.sent)
}

func TestSendMessage(t *testing.T) {
	t.Run("without webview", func(t *testing.T) {
		n := &fakeNotifier{}
		d := newTestDispatcher(n, 0)

		res, err := d.HandleSubmission(context.Background(), SendMessage{UserID: 42})
		require.NoError(t, err)
		assert.True(t, res.OK)
		require.Len(t, n.sent, 1)
		assert.Equal(t, "Hello World!", n.sent[0].text)
		assert.Equal(t, telegram.ParseModeMarkdown, n.sent[0].opts.ParseMode)
		assert.Empty(t, n.sent[0].opts.Buttons)
	})

	t.Run("with webview", func(t *testing.T) {
		n := &fakeNotifier{}
		d := newTestDispatcher(n, 0)

		res, err := d.HandleSubmission(context.Background(), SendMessage{UserID: 42, WithWebview: true})
		require.NoError(t, err)
		assert.True(t, res.OK)
		require.Len(t, n.sent, 1)
		assert.Equal(t, []telegram.Button{{Text: "Open WebApp", URL: "https://example.com"}}, n.sent[0].opts.Buttons)
	})
}

func TestUnknownMethodSendsNothing(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n, 0)

	res, err := d.HandleSubmission(context.Background(), UnknownMethod{Name: "deleteEverything", UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, Result{OK: false, Error: "Unknown method"}, res)
	assert.Empty(t, n.sent)
}

func TestHandleUpdateWithWebAppData(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n, 0)

	u := Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: 42},
			From: &tgbotapi.User{ID: 42},
		},
		WebAppData: &WebAppData{Data: []byte(`"{\"method\":\"sendMessage\"}"`)},
	}
	require.NoError(t, d.HandleUpdate(context.Background(), u))
	require.Len(t, n.sent, 1)
	assert.Equal(t, int64(42), n.sent[0].recipient)
	assert.Equal(t, GreetingText, n.sent[0].text)
}

func TestHandleUpdateRejectsInvalidWebAppData(t *testing.T) {
	n := &fakeNotifier{}
	d := newTestDispatcher(n, 0)

	err := d.HandleUpdate(context.Background(), Update{WebAppData: &WebAppData{Data: []byte(`{"method":"makeOrder"}`)}})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Empty(t, n.sent)
}
