package functions

import (
	"context"
	"fmt"
	"time"
)

const (
	SendSMSName        = "send_sms"
	GetCurrentTimeName = "get_current_time"
	FormatDateName     = "format_date"
	EndCallName        = "end_call"
)

type sendSMSFunction struct {
	sender  SMSSender
	timeout time.Duration
}

// NewSendSMS builds the send_sms built-in. An SMS is a side effect; it gets
// one attempt.
func NewSendSMS(sender SMSSender, timeout time.Duration) Function {
	return &sendSMSFunction{sender: sender, timeout: timeout}
}

func (f *sendSMSFunction) Name() string { return SendSMSName }

func (f *sendSMSFunction) Description() string {
	return "Send a text message to the caller, for example a summary or address."
}

func (f *sendSMSFunction) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message": map[string]interface{}{
				"type":        "string",
				"description": "The text message body",
			},
			"to": map[string]interface{}{
				"type":        "string",
				"description": "Optional destination number; defaults to the caller",
			},
		},
		"required": []interface{}{"message"},
	}
}

func (f *sendSMSFunction) Timeout() time.Duration { return f.timeout }
func (f *sendSMSFunction) Retries() int           { return 0 }

func (f *sendSMSFunction) Invoke(ctx context.Context, args map[string]interface{}, call CallContext) (Result, error) {
	message, _ := args["message"].(string)
	if message == "" {
		return Fail("a message is required"), nil
	}

	to, _ := args["to"].(string)
	if to == "" {
		to = call.CustomerPhone
	}
	if to == "" {
		return Fail("no destination number is known for this caller"), nil
	}

	messageID, err := f.sender.SendSMS(ctx, to, message)
	if err != nil {
		return Result{}, err
	}
	return OK(map[string]interface{}{"message_id": messageID}), nil
}

type getCurrentTimeFunction struct{}

// NewGetCurrentTime builds the get_current_time built-in.
func NewGetCurrentTime() Function {
	return getCurrentTimeFunction{}
}

func (getCurrentTimeFunction) Name() string { return GetCurrentTimeName }

func (getCurrentTimeFunction) Description() string {
	return "Get the current date and time."
}

func (getCurrentTimeFunction) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (getCurrentTimeFunction) Timeout() time.Duration { return time.Second }
func (getCurrentTimeFunction) Retries() int           { return 0 }

func (getCurrentTimeFunction) Invoke(_ context.Context, _ map[string]interface{}, _ CallContext) (Result, error) {
	now := time.Now()
	return OK(map[string]interface{}{
		"iso":    now.Format(time.RFC3339),
		"spoken": now.Format("Monday, January 2 at 3:04 PM"),
	}), nil
}

type formatDateFunction struct{}

// NewFormatDate builds the format_date built-in.
func NewFormatDate() Function {
	return formatDateFunction{}
}

func (formatDateFunction) Name() string { return FormatDateName }

func (formatDateFunction) Description() string {
	return "Turn a date like 2026-03-10 into a speakable form like Tuesday, March 10."
}

func (formatDateFunction) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type":        "string",
				"description": "Date in YYYY-MM-DD format",
			},
		},
		"required": []interface{}{"date"},
	}
}

func (formatDateFunction) Timeout() time.Duration { return time.Second }
func (formatDateFunction) Retries() int           { return 0 }

var spokenDateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05Z07:00", "01/02/2006"}

func (formatDateFunction) Invoke(_ context.Context, args map[string]interface{}, _ CallContext) (Result, error) {
	raw, _ := args["date"].(string)
	if raw == "" {
		return Fail("a date is required"), nil
	}
	for _, layout := range spokenDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return OK(map[string]interface{}{"spoken": parsed.Format("Monday, January 2")}), nil
		}
	}
	return Fail(fmt.Sprintf("could not understand the date %q", raw)), nil
}

type endCallFunction struct{}

// NewEndCall builds the end_call built-in: a no-op whose invocation is the
// structured signal that the conversation is complete.
func NewEndCall() Function {
	return endCallFunction{}
}

func (endCallFunction) Name() string { return EndCallName }

func (endCallFunction) Description() string {
	return "End the call once the caller's request is fully handled and you have said goodbye."
}

func (endCallFunction) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (endCallFunction) Timeout() time.Duration { return time.Second }
func (endCallFunction) Retries() int           { return 0 }

func (endCallFunction) Invoke(_ context.Context, _ map[string]interface{}, _ CallContext) (Result, error) {
	return OK(map[string]interface{}{"end_call": true}), nil
}
