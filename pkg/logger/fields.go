package logger

import "context"

const (
	FieldRequestID = "request_id"
	FieldUpdateID  = "update_id"
	FieldChatID    = "chat_id"
	FieldUserID    = "user_id"
	FieldMethod    = "mini_app_method"
)

func (l *Logger) WithRequestID(ctx context.Context, requestID string) context.Context {
	return l.WithField(ctx, FieldRequestID, requestID)
}

// WithUpdateID tags events with the Bot API update being handled.
func (l *Logger) WithUpdateID(ctx context.Context, updateID int) context.Context {
	return l.WithField(ctx, FieldUpdateID, updateID)
}

func (l *Logger) WithChatID(ctx context.Context, chatID int64) context.Context {
	return l.WithField(ctx, FieldChatID, chatID)
}

// WithSubmission tags events with the Mini-App caller and method.
func (l *Logger) WithSubmission(ctx context.Context, userID int64, method string) context.Context {
	return l.WithFields(ctx, map[string]any{
		FieldUserID: userID,
		FieldMethod: method,
	})
}
