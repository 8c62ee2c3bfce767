// Package sms abstracts verification-code delivery.
package sms

import (
	"context"
	"log/slog"
)

// Sender delivers a verification code to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogSender logs codes instead of sending them. Used in development and as
// the default until an SMS provider is wired in.
type LogSender struct{}

func (LogSender) Send(_ context.Context, phone, code string) error {
	slog.Info("verification code issued", "phone", phone, "code", code)
	return nil
}
