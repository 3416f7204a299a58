package dispatcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"saleor-tma-bot/internal/catalog"
	pkgerrors "saleor-tma-bot/pkg/errors"
)

const (
	MethodMakeOrder     = "makeOrder"
	MethodCheckInitData = "checkInitData"
	MethodSendMessage   = "sendMessage"
)

// Submission is one Mini-App call, discriminated by its method.
type Submission interface {
	Method() string
	Recipient() int64
}

type MakeOrder struct {
	UserID       UserID     `json:"user_id" validate:"required"`
	OrderData    string     `json:"order_data" validate:"required"`
	Comment      string     `json:"comment"`
	RestaurantID catalog.ID `json:"restaurant_id"`
}

func (MakeOrder) Method() string     { return MethodMakeOrder }
func (m MakeOrder) Recipient() int64 { return int64(m.UserID) }

// CheckInitData carries the Mini-App init data untouched. It is not verified.
type CheckInitData struct {
	UserID   UserID          `json:"user_id"`
	InitData json.RawMessage `json:"init_data"`
}

func (CheckInitData) Method() string     { return MethodCheckInitData }
func (c CheckInitData) Recipient() int64 { return int64(c.UserID) }

type SendMessage struct {
	UserID      UserID `json:"user_id" validate:"required"`
	WithWebview Flag   `json:"with_webview"`
}

func (SendMessage) Method() string     { return MethodSendMessage }
func (s SendMessage) Recipient() int64 { return int64(s.UserID) }

type UnknownMethod struct {
	Name   string
	UserID int64
}

func (u UnknownMethod) Method() string    { return u.Name }
func (u UnknownMethod) Recipient() int64 { return u.UserID }

// UserID is a chat user id sent as a JSON number or a numeric string. Any other
// shape reads as 0, which the required rule then reports as missing.
type UserID int64

func (u *UserID) UnmarshalJSON(data []byte) error {
	*u = 0
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*u = UserID(n)
	}
	return nil
}

// methodName reads the method discriminator without caring about its JSON type.
func methodName(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Flag is a loosely typed boolean: true, non-zero numbers and non-empty strings
// other than "false"/"0" are set.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*f = false
	case bytes.Equal(data, []byte("true")):
		*f = true
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.ToLower(s))
		*f = Flag(s != "" && s != "false" && s != "0")
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("flag must be a boolean: %w", err)
		}
		v, err := n.Float64()
		*f = Flag(err == nil && v != 0)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// DecodeSubmission reads a {method, user_id?, ...} object into its variant. Only
// makeOrder and sendMessage are decoded strictly and validated; checkInitData and
// unknown methods never fail on their other fields. defaultUserID fills a missing
// user_id.
func DecodeSubmission(raw []byte, defaultUserID int64) (Submission, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, invalidBody(err)
		}
		raw = []byte(inner)
	}

	var head struct {
		Method json.RawMessage `json:"method"`
		UserID UserID          `json:"user_id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, invalidBody(err)
	}
	userID := head.UserID
	if userID == 0 {
		userID = UserID(defaultUserID)
	}

	var sub Submission
	switch method := methodName(head.Method); method {
	case MethodMakeOrder:
		var v MakeOrder
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, invalidBody(err)
		}
		v.UserID = userID
		sub = v
	case MethodSendMessage:
		var v SendMessage
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, invalidBody(err)
		}
		v.UserID = userID
		sub = v
	case MethodCheckInitData:
		var fields struct {
			InitData json.RawMessage `json:"init_data"`
		}
		_ = json.Unmarshal(raw, &fields)
		return CheckInitData{UserID: userID, InitData: fields.InitData}, nil
	default:
		return UnknownMethod{Name: method, UserID: int64(userID)}, nil
	}

	if err := validate.Struct(sub); err != nil {
		return nil, formatValidationErrors(err)
	}
	return sub, nil
}

func invalidBody(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
		WithDetails(map[string]any{"error": err.Error()})
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		fields := make([]string, 0, len(errs))
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = "is required"
			fields = append(fields, fieldErr.Field())
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "missing "+strings.Join(fields, ", ")).WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}
