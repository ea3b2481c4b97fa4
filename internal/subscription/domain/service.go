package domain

import (
	"context"
	"errors"
	"net/http"
)

const (
	ProviderStripe = "stripe"
	ProviderPayPal = "paypal"
)

// Service ingests payment-provider webhooks and flips the owner's premium
// flag. An event is recorded on arrival but only marked processed once the
// flip lands; a redelivery of a fully processed event returns
// ErrEventAlreadyProcessed, which the HTTP layer acknowledges with 200 so
// providers stop retrying, while a redelivery of an unprocessed one retries
// the flip.
type Service interface {
	IngestWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error
}

var (
	ErrUnknownProvider       = errors.New("unknown_provider")
	ErrMalformedPayload      = errors.New("malformed_payload")
	ErrUnsupportedEvent      = errors.New("unsupported_event")
	ErrInvalidSignature      = errors.New("invalid_signature")
	ErrEventAlreadyProcessed = errors.New("event_already_processed")
)
