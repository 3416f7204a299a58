package dispatcher

import (
	"encoding/json"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Update is the inbound webhook body.
type Update struct {
	UpdateID   int               `json:"update_id,omitempty"`
	Message    *tgbotapi.Message `json:"message,omitempty"`
	WebAppData *WebAppData       `json:"web_app_data,omitempty"`
}

// WebAppData.Data is a {method, ...} object, or a string holding one.
type WebAppData struct {
	Data json.RawMessage `json:"data"`
}

// Event is a DispatchEvent: either a ChatCommand or a MiniAppSubmission.
type Event interface {
	kind() string
}

type ChatCommand struct {
	ChatID int64
	Text   string
}

func (ChatCommand) kind() string { return "command" }

type MiniAppSubmission struct {
	Submission Submission
}

func (MiniAppSubmission) kind() string { return "mini_app" }

func (m MiniAppSubmission) UserID() int64 {
	return m.Submission.Recipient()
}

func (m MiniAppSubmission) Method() string {
	return m.Submission.Method()
}

// Events classifies the update. A message yields a ChatCommand, web_app_data yields
// a MiniAppSubmission; an update may carry both and they keep that order.
func (u Update) Events() ([]Event, error) {
	var events []Event
	var senderID int64

	if msg := u.Message; msg != nil {
		if msg.From != nil {
			senderID = msg.From.ID
		}
		if msg.Chat != nil {
			if senderID == 0 {
				senderID = msg.Chat.ID
			}
			events = append(events, ChatCommand{ChatID: msg.Chat.ID, Text: msg.Text})
		}
	}

	if u.WebAppData != nil {
		sub, err := DecodeSubmission(u.WebAppData.Data, senderID)
		if err != nil {
			return nil, err
		}
		events = append(events, MiniAppSubmission{Submission: sub})
	}
	return events, nil
}
