package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/internal/config"
	"github.com/smallbiznis/tipfolio/internal/subscription/domain"
	userdomain "github.com/smallbiznis/tipfolio/internal/user/domain"
	"github.com/smallbiznis/tipfolio/pkg/log"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type service struct {
	db           *gorm.DB
	repo         domain.Repository
	users        userdomain.Service
	genID        *snowflake.Node
	stripeSecret string
}

func New(conn *gorm.DB, repo domain.Repository, users userdomain.Service, genID *snowflake.Node, cfg config.Config) domain.Service {
	return &service{
		db:           conn,
		repo:         repo,
		users:        users,
		genID:        genID,
		stripeSecret: strings.TrimSpace(cfg.StripeWebhookSecret),
	}
}

// webhookOutcome is the normalized result of parsing one provider payload.
type webhookOutcome struct {
	EventID   string
	EventType string
	Email     string
	Premium   bool
}

// IngestWebhook records the event first and marks it processed only after
// the premium flip lands. A transient failure leaves ProcessedAt nil, so
// the provider's redelivery retries the flip instead of hitting the
// dedupe key and losing it.
func (s *service) IngestWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error {
	provider = strings.ToLower(strings.TrimSpace(provider))

	var (
		outcome webhookOutcome
		err     error
	)
	switch provider {
	case domain.ProviderStripe:
		if err := s.verifyStripeSignature(payload, headers); err != nil {
			return err
		}
		outcome, err = parseStripe(payload)
	case domain.ProviderPayPal:
		outcome, err = parsePayPal(payload)
	default:
		return domain.ErrUnknownProvider
	}
	if err != nil {
		return err
	}

	var raw datatypes.JSONMap
	_ = json.Unmarshal(payload, &raw)
	received := &domain.WebhookEvent{
		ID:         s.genID.Generate(),
		Provider:   provider,
		EventID:    outcome.EventID,
		EventType:  outcome.EventType,
		Payload:    raw,
		ReceivedAt: time.Now().UTC(),
	}

	inserted, err := s.repo.InsertEvent(ctx, s.db, received)
	if err != nil {
		return err
	}
	stored := received
	if !inserted {
		stored, err = s.repo.FindEvent(ctx, s.db, provider, outcome.EventID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domain.ErrMalformedPayload
		}
		if stored.ProcessedAt != nil {
			return domain.ErrEventAlreadyProcessed
		}
	}

	if _, err := s.users.SetPremiumByEmail(ctx, outcome.Email, outcome.Premium); err != nil {
		if err != userdomain.ErrNotFound {
			return err
		}
		// The provider knows accounts we do not; acknowledge so it stops
		// redelivering.
		log.L(ctx).Warn("webhook for unknown account",
			zap.String("provider", provider),
			zap.String("event_type", outcome.EventType),
		)
	}

	if err := s.repo.MarkProcessed(ctx, s.db, stored.ID, time.Now().UTC()); err != nil {
		return err
	}

	log.L(ctx).Info("webhook processed",
		zap.String("provider", provider),
		zap.String("event_id", outcome.EventID),
		zap.String("event_type", outcome.EventType),
		zap.Bool("premium", outcome.Premium),
	)
	return nil
}

// verifyStripeSignature checks the Stripe-Signature header (t=timestamp,
// v1=hex HMAC-SHA256 of "timestamp.payload"). An empty configured secret
// skips verification for local runs.
func (s *service) verifyStripeSignature(payload []byte, headers http.Header) error {
	if s.stripeSecret == "" {
		return nil
	}

	header := ""
	if headers != nil {
		header = strings.TrimSpace(headers.Get("Stripe-Signature"))
	}
	if header == "" {
		return domain.ErrInvalidSignature
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return domain.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(s.stripeSecret))
	_, _ = mac.Write([]byte(fmt.Sprintf("%s.%s", timestamp, payload)))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return nil
		}
	}
	return domain.ErrInvalidSignature
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			CustomerEmail   string `json:"customer_email"`
			CustomerDetails struct {
				Email string `json:"email"`
			} `json:"customer_details"`
		} `json:"object"`
	} `json:"data"`
}

func parseStripe(payload []byte) (webhookOutcome, error) {
	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil || event.ID == "" {
		return webhookOutcome{}, domain.ErrMalformedPayload
	}

	email := event.Data.Object.CustomerEmail
	if email == "" {
		email = event.Data.Object.CustomerDetails.Email
	}

	switch event.Type {
	case "checkout.session.completed", "customer.subscription.created":
		return webhookOutcome{EventID: event.ID, EventType: event.Type, Email: email, Premium: true}, nil
	case "customer.subscription.deleted":
		return webhookOutcome{EventID: event.ID, EventType: event.Type, Email: email, Premium: false}, nil
	default:
		return webhookOutcome{}, domain.ErrUnsupportedEvent
	}
}

type paypalEvent struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Resource  struct {
		Subscriber struct {
			EmailAddress string `json:"email_address"`
		} `json:"subscriber"`
	} `json:"resource"`
}

func parsePayPal(payload []byte) (webhookOutcome, error) {
	var event paypalEvent
	if err := json.Unmarshal(payload, &event); err != nil || event.ID == "" {
		return webhookOutcome{}, domain.ErrMalformedPayload
	}

	email := event.Resource.Subscriber.EmailAddress

	switch event.EventType {
	case "BILLING.SUBSCRIPTION.ACTIVATED":
		return webhookOutcome{EventID: event.ID, EventType: event.EventType, Email: email, Premium: true}, nil
	case "BILLING.SUBSCRIPTION.CANCELLED", "BILLING.SUBSCRIPTION.EXPIRED":
		return webhookOutcome{EventID: event.ID, EventType: event.EventType, Email: email, Premium: false}, nil
	default:
		return webhookOutcome{}, domain.ErrUnsupportedEvent
	}
}
