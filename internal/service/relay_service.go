package service

import (
	"context"
	"fmt"
	"time"

	"github.com/voyatalk/voyatalk/internal/audit"
	"github.com/voyatalk/voyatalk/internal/cache"
	"github.com/voyatalk/voyatalk/internal/classify"
	"github.com/voyatalk/voyatalk/internal/domain"
	"github.com/voyatalk/voyatalk/internal/events"
	"github.com/voyatalk/voyatalk/internal/hub"
	"github.com/voyatalk/voyatalk/internal/payment"
	"github.com/voyatalk/voyatalk/internal/repository"
	"github.com/voyatalk/voyatalk/pkg/log"
)

type relayService struct {
	hub      *hub.Hub
	presence *hub.PresenceBroadcaster
	messages repository.MessageRepository
	bookings repository.BookingRepository
	payments *payment.Verifier
	history  cache.ConversationCache
	archive  events.Publisher
}

// NewRelayService wires the relay dispatcher.
func NewRelayService(
	h *hub.Hub,
	presence *hub.PresenceBroadcaster,
	messages repository.MessageRepository,
	bookings repository.BookingRepository,
	payments *payment.Verifier,
	history cache.ConversationCache,
	archive events.Publisher,
) RelayService {
	return &relayService{
		hub:      h,
		presence: presence,
		messages: messages,
		bookings: bookings,
		payments: payments,
		history:  history,
		archive:  archive,
	}
}

func (s *relayService) HandleConnect(ctx context.Context, c *hub.Client) {
	s.hub.Admit(c)
	s.presence.Announce()
}

func (s *relayService) HandleDisconnect(ctx context.Context, c *hub.Client) {
	s.hub.Evict(c)
	s.presence.Announce()
}

// HandleFrame dispatches one inbound frame. Every error is contained to
// the frame: nothing in here closes the connection or touches its peers.
func (s *relayService) HandleFrame(ctx context.Context, c *hub.Client, raw []byte) {
	frame, err := domain.DecodeFrame(raw)
	if err != nil {
		l := log.L()
		l.Warn().Uint64(log.FieldConnID, c.ID).Err(err).Msg("malformed frame dropped")
		return
	}

	switch frame.Kind {
	case domain.FramePaymentUIHint:
		// One-way server→client hint; never stored, never forwarded.
		l := log.L()
		l.Debug().Uint64(log.FieldConnID, c.ID).Msg("payment ui hint discarded")

	case domain.FramePaymentOutcome:
		s.handlePaymentOutcome(ctx, c, frame.Payment)

	case domain.FrameChat:
		s.handleChat(ctx, c, frame.Chat)
	}
}

// handleChat classifies, persists, and fans the message out to the
// recipient's live connections. Persistence happens-before forwarding:
// a failed store means no forward at all.
func (s *relayService) handleChat(ctx context.Context, c *hub.Client, chat *domain.ChatFrame) {
	l := log.L()

	if !c.Authenticated() || chat.Recipient == "" || chat.Text == "" {
		l.Debug().Uint64(log.FieldConnID, c.ID).Msg("invalid chat frame dropped")
		return
	}

	msg := &domain.Message{
		Sender:    c.Identity.UserID,
		Recipient: chat.Recipient,
		Text:      chat.Text,
		Type:      classify.Classify(chat.Text),
	}

	stored, err := s.messages.Create(ctx, msg)
	if err != nil {
		l.Error().
			Uint64(log.FieldConnID, c.ID).
			Str(log.FieldRecipient, chat.Recipient).
			Err(err).
			Msg("message store failed, frame dropped")
		return
	}

	s.afterPersist(ctx, stored)
	s.forward(stored, s.hub.Find(stored.Recipient))
}

// handlePaymentOutcome validates the checkout signature and replies to the
// originating connection only. A signature mismatch is a user-visible
// failure message, not an error.
func (s *relayService) handlePaymentOutcome(ctx context.Context, c *hub.Client, p *domain.PaymentOutcomeFrame) {
	l := log.L()

	if !c.Authenticated() {
		l.Debug().Uint64(log.FieldConnID, c.ID).Msg("payment frame from unauthenticated connection dropped")
		return
	}

	// The confirmation renders inside the conversation the offer came
	// from, so it is attributed to that peer.
	peer := p.Meta.Peer
	if peer == "" {
		peer = c.Identity.UserID
	}

	if !s.payments.Verify(p.OrderID, p.PaymentID, p.Signature) {
		audit.LogWithDetail(ctx, audit.ActionPaymentRejected, c.Identity.UserID, p.OrderID, "payment signature mismatch")
		text := fmt.Sprintf("Payment verification failed for order %s. Your booking was not confirmed.", p.OrderID)
		s.replyToSender(ctx, c, peer, text, domain.MessageTypeText)
		return
	}

	booking := &domain.FlightBooking{
		UserID:        c.Identity.UserID,
		Name:          p.Meta.Name,
		From:          p.Meta.From,
		To:            p.Meta.To,
		Airline:       p.Meta.Airline,
		DateOfJourney: parseJourneyDate(p.Meta.DateOfJourney),
		TotalPrice:    p.Meta.TotalPrice,
		PaymentStatus: domain.PaymentStatusPaid,
		OrderID:       p.OrderID,
		PaymentID:     p.PaymentID,
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		l.Error().
			Str(log.FieldUserID, c.Identity.UserID).
			Str(log.FieldOrderID, p.OrderID).
			Err(err).
			Msg("booking create failed")
		return
	}

	audit.LogWithDetail(ctx, audit.ActionPaymentVerified, c.Identity.UserID, created.ID, "payment verified, booking confirmed")
	l.Info().
		Str(log.FieldUserID, c.Identity.UserID).
		Str(log.FieldBookingID, created.ID).
		Str(log.FieldOrderID, p.OrderID).
		Str(log.FieldPaymentID, p.PaymentID).
		Msg("flight booking confirmed")

	text := fmt.Sprintf(
		"Flight booking confirmed! Booking ID: %s. %s to %s with %s, total ₹%.2f.",
		created.ID, created.From, created.To, created.Airline, created.TotalPrice,
	)
	s.replyToSender(ctx, c, peer, text, domain.MessageTypeFlightBooking)
}

// replyToSender persists a payment-outcome message and delivers it to the
// originating connection only (unicast, never fanned out).
func (s *relayService) replyToSender(ctx context.Context, c *hub.Client, peer, text string, typ domain.MessageType) {
	msg := &domain.Message{
		Sender:    peer,
		Recipient: c.Identity.UserID,
		Text:      text,
		Type:      typ,
	}

	stored, err := s.messages.Create(ctx, msg)
	if err != nil {
		l := log.L()
		l.Error().Uint64(log.FieldConnID, c.ID).Err(err).Msg("payment result store failed, frame dropped")
		return
	}

	s.afterPersist(ctx, stored)
	s.forward(stored, []*hub.Client{c})
}

// afterPersist runs the best-effort side effects of a durable write:
// history cache invalidation and archive publishing. Failures are logged
// and never affect delivery.
func (s *relayService) afterPersist(ctx context.Context, msg *domain.Message) {
	l := log.L()

	if err := s.history.Invalidate(ctx, msg.Sender, msg.Recipient); err != nil {
		l.Warn().Str(log.FieldMessageID, msg.ID).Err(err).Msg("history cache invalidation failed")
	}
	if err := s.archive.PublishMessage(ctx, msg); err != nil {
		l.Warn().Str(log.FieldMessageID, msg.ID).Err(err).Msg("archive publish failed")
	}
}

func (s *relayService) forward(msg *domain.Message, targets []*hub.Client) {
	delivery := domain.DeliveryFromMessage(msg)
	for _, target := range targets {
		target.SendJSON(delivery)
	}

	l := log.L()
	l.Debug().
		Str(log.FieldMessageID, msg.ID).
		Str(log.FieldRecipient, msg.Recipient).
		Str(log.FieldMessageType, string(msg.Type)).
		Int("targets", len(targets)).
		Msg("message relayed")
}

// parseJourneyDate accepts the formats the checkout flow is known to send.
func parseJourneyDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
