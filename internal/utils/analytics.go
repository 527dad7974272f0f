// analytics.go wraps posthog.Client so callers never have to care whether
// analytics capture is configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// Event names captured for the core ledger operations.
const (
	EventEntryCreated    = "journal_entry_created"
	EventEntryApproved   = "journal_entry_approved"
	EventInvoiceApproved = "invoice_approved"
	EventPeriodClosed    = "period_closed"
)

// AnalyticsClient is a nil-safe wrapper around posthog.Client.
type AnalyticsClient struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializeAnalyticsClient returns a no-op client when apiKey is empty.
func InitializeAnalyticsClient(apiKey string, logger *slog.Logger) *AnalyticsClient {
	if apiKey == "" {
		logger.Warn("Analytics API key is empty, event capture disabled.")
		return &AnalyticsClient{}
	}
	wrapper := AnalyticsClient{logger: logger}
	wrapper.client, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	return &wrapper
}

// IsInitialized reports whether events will actually be sent.
func (w *AnalyticsClient) IsInitialized() bool {
	return w.client != nil
}

// Enqueue captures a single event; fire-and-forget, no error surfaced.
func (w *AnalyticsClient) Enqueue(distinctID string, event string, properties map[string]any) {
	if w.client == nil {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
}

// Close flushes pending events.
func (w *AnalyticsClient) Close() {
	if w.client == nil {
		return
	}
	w.client.Close()
}
