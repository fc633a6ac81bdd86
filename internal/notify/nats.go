// Package notify publishes build reports to NATS so other services can react
// to finished builds.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/logfields"
	"git.home.luguber.info/inful/staticrender/internal/report"
)

// DefaultSubject is the subject build reports are published on.
const DefaultSubject = "sr.builds"

// Publisher is the subset of *nats.Conn used for publishing.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Notifier publishes build reports.
type Notifier struct {
	pub     Publisher
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// Connect dials the NATS server at url.
func Connect(url, subject string, logger *slog.Logger) (*Notifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := nats.Connect(url,
		nats.Name("sr"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", logfields.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNetwork, "failed to connect to NATS").
			WithRetry(errors.RetryBackoff).
			WithContext("url", url).
			Build()
	}

	n := New(conn, subject, logger)
	n.conn = conn
	logger.Info("NATS notifications enabled", slog.String("url", url), slog.String("subject", n.subject))
	return n, nil
}

// New wraps an existing publisher.
func New(pub Publisher, subject string, logger *slog.Logger) *Notifier {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{pub: pub, subject: subject, logger: logger}
}

// Notify publishes b as JSON. With a live connection it waits until the
// server acknowledged the message or ctx ends.
func (n *Notifier) Notify(ctx context.Context, b *report.Build) error {
	data, err := json.Marshal(b)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal build report").Build()
	}
	if err := n.pub.Publish(n.subject, data); err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "failed to publish build report").
			WithRetry(errors.RetryBackoff).
			WithContext("subject", n.subject).
			Build()
	}
	if n.conn != nil {
		if err := n.conn.FlushWithContext(ctx); err != nil {
			return errors.WrapError(err, errors.CategoryNetwork, "failed to flush NATS connection").
				WithRetry(errors.RetryBackoff).
				Build()
		}
	}
	n.logger.Debug("Published build report", logfields.BuildID(b.BuildID), slog.String("subject", n.subject))
	return nil
}

// Close drains the NATS connection, if one was opened by Connect.
func (n *Notifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
