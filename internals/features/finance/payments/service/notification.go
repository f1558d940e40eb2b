// file: internals/features/finance/payments/service/notification.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	model "schoolku_backend/internals/features/finance/payments/model"
	"schoolku_backend/internals/features/finance/payments/repository"
)

// GatewayNotification carries the signed fields of a Midtrans notification.
// The webhook and the client-side verify call both produce one.
type GatewayNotification struct {
	OrderID           string
	StatusCode        string
	GrossAmount       string
	SignatureKey      string
	TransactionStatus string
	FraudStatus       string
	TransactionID     string
	Raw               []byte
}

type NotificationOutcome string

const (
	OutcomeSucceeded NotificationOutcome = "succeeded"
	OutcomeFailed    NotificationOutcome = "failed"
	OutcomePending   NotificationOutcome = "pending"
	OutcomeUnchanged NotificationOutcome = "unchanged"
	OutcomeIgnored   NotificationOutcome = "ignored"
	OutcomeConflict  NotificationOutcome = "conflict"
)

type NotificationResult struct {
	Outcome       NotificationOutcome       `json:"outcome"`
	PaymentID     *uuid.UUID                `json:"payment_id,omitempty"`
	PaymentStatus model.OnlinePaymentStatus `json:"payment_status,omitempty"`
	Reason        string                    `json:"reason,omitempty"`
}

// HandleGatewayNotification logs the notification, verifies the signature and
// applies the status transition. Only a verified notification can move an
// order to success.
func (s *FeeService) HandleGatewayNotification(ctx context.Context, n GatewayNotification) (*NotificationResult, error) {
	valid := s.gateway != nil && s.gateway.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey)
	ev := s.logEvent(ctx, n, valid)

	if !valid {
		gatewaySignatureRejected.Inc()
		s.finishEvent(ctx, ev, model.GatewayEventStatusRejected, ErrInvalidSignature.Error())
		s.log.Warn("gateway notification with invalid signature", zap.String("order_id", n.OrderID))
		return nil, ErrInvalidSignature
	}

	p, err := s.store.GetOnlinePaymentByOrderID(ctx, n.OrderID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			// Acknowledge so the gateway stops retrying.
			s.finishEvent(ctx, ev, model.GatewayEventStatusIgnored, "unknown order")
			return &NotificationResult{Outcome: OutcomeIgnored, Reason: "unknown order"}, nil
		}
		s.finishEvent(ctx, ev, model.GatewayEventStatusFailed, err.Error())
		return nil, err
	}
	if ev != nil {
		ev.GatewayEventPaymentID = &p.OnlinePaymentID
	}

	target, reason := mapMidtransStatus(n.TransactionStatus, n.FraudStatus)
	if target == "" {
		s.finishEvent(ctx, ev, model.GatewayEventStatusProcessed, "")
		return &NotificationResult{Outcome: OutcomePending, PaymentID: &p.OnlinePaymentID, PaymentStatus: p.OnlinePaymentStatus}, nil
	}

	var res *NotificationResult
	apply := func(tx repository.LedgerStore) error {
		cur, err := tx.GetOnlinePaymentByOrderID(ctx, n.OrderID)
		if err != nil {
			return err
		}
		res, err = s.applyTransition(ctx, tx, cur, n, target, reason)
		return err
	}
	err = s.store.WithStudentLock(ctx, p.OnlinePaymentStudentID, apply)
	if errors.Is(err, repository.ErrStudentNotFound) {
		// student was hard-deleted; the verified transition still has to land
		err = apply(s.store)
	}
	if err != nil {
		s.finishEvent(ctx, ev, model.GatewayEventStatusFailed, err.Error())
		return nil, err
	}

	s.finishEvent(ctx, ev, model.GatewayEventStatusProcessed, res.Reason)
	s.log.Info("gateway notification applied",
		zap.String("order_id", n.OrderID),
		zap.String("transaction_status", n.TransactionStatus),
		zap.String("outcome", string(res.Outcome)))
	return res, nil
}

func (s *FeeService) applyTransition(
	ctx context.Context,
	tx repository.LedgerStore,
	p *model.OnlinePaymentModel,
	n GatewayNotification,
	target model.OnlinePaymentStatus,
	reason string,
) (*NotificationResult, error) {
	res := &NotificationResult{PaymentID: &p.OnlinePaymentID}

	if p.OnlinePaymentStatus == target || p.OnlinePaymentStatus == model.OnlinePaymentStatusSuccess {
		res.Outcome = OutcomeUnchanged
		res.PaymentStatus = p.OnlinePaymentStatus
		return res, nil
	}

	now := s.now()
	switch target {
	case model.OnlinePaymentStatusSuccess:
		// An order the reaper already failed lost its reservation; take it again.
		if p.OnlinePaymentStatus == model.OnlinePaymentStatusFailed {
			if err := claimMonths(ctx, tx, p.OnlinePaymentStudentID, p.OnlinePaymentID, model.PaymentSourceOnline, p.OnlinePaymentMonths); err != nil {
				if months, ok := ConflictingMonths(err); ok {
					monthConflicts.WithLabelValues(string(model.PaymentSourceOnline)).Inc()
					s.log.Error("late gateway settlement collides with paid months; refund required",
						zap.String("order_id", p.OnlinePaymentOrderID), zap.Strings("months", months))
					res.Outcome = OutcomeConflict
					res.PaymentStatus = p.OnlinePaymentStatus
					res.Reason = "months already paid: " + strings.Join(months, ", ")
					return res, nil
				}
				return nil, err
			}
		}
		p.OnlinePaymentStatus = model.OnlinePaymentStatusSuccess
		p.OnlinePaymentAmountPaid = CoerceAmount(n.GrossAmount)
		p.OnlinePaymentPaidAt = &now
		p.OnlinePaymentFailureReason = nil
		res.Outcome = OutcomeSucceeded

	case model.OnlinePaymentStatusFailed:
		if err := tx.ReleaseClaims(ctx, p.OnlinePaymentID); err != nil {
			return nil, err
		}
		p.OnlinePaymentStatus = model.OnlinePaymentStatusFailed
		p.OnlinePaymentFailureReason = &reason
		res.Outcome = OutcomeFailed
	}

	if n.TransactionID != "" {
		p.OnlinePaymentTransactionID = &n.TransactionID
	}
	if n.SignatureKey != "" {
		p.OnlinePaymentSignature = &n.SignatureKey
	}
	if len(n.Raw) > 0 {
		p.OnlinePaymentRawNotif = datatypes.JSON(n.Raw)
	}
	if err := tx.UpdateOnlinePayment(ctx, p); err != nil {
		return nil, err
	}
	if res.Outcome == OutcomeSucceeded {
		paymentsRecorded.WithLabelValues(string(model.PaymentSourceOnline)).Inc()
	}
	res.PaymentStatus = p.OnlinePaymentStatus
	return res, nil
}

// mapMidtransStatus returns "" for states that do not change the order.
func mapMidtransStatus(transactionStatus, fraudStatus string) (model.OnlinePaymentStatus, string) {
	ts := strings.ToLower(strings.TrimSpace(transactionStatus))
	fraud := strings.ToLower(strings.TrimSpace(fraudStatus))
	switch ts {
	case "capture":
		switch fraud {
		case "", "accept":
			return model.OnlinePaymentStatusSuccess, ""
		case "challenge":
			return "", ""
		}
		return model.OnlinePaymentStatusFailed, "fraud status " + fraud
	case "settlement":
		return model.OnlinePaymentStatusSuccess, ""
	case "deny", "cancel", "expire", "failure":
		return model.OnlinePaymentStatusFailed, "gateway " + ts
	}
	return "", ""
}

/* ===================== gateway event log ===================== */

func (s *FeeService) logEvent(ctx context.Context, n GatewayNotification, valid bool) *model.GatewayEventModel {
	ev := &model.GatewayEventModel{
		GatewayEventID:                uuid.New(),
		GatewayEventProvider:          model.GatewayProviderMidtrans,
		GatewayEventOrderID:           n.OrderID,
		GatewayEventTransactionStatus: n.TransactionStatus,
		GatewayEventStatusCode:        n.StatusCode,
		GatewayEventSignatureValid:    valid,
		GatewayEventStatus:            model.GatewayEventStatusReceived,
		GatewayEventReceivedAt:        s.now(),
	}
	if n.TransactionID != "" {
		ev.GatewayEventTransactionID = &n.TransactionID
	}
	if len(n.Raw) > 0 {
		ev.GatewayEventPayload = datatypes.JSON(n.Raw)
	}
	if err := s.store.CreateGatewayEvent(ctx, ev); err != nil {
		s.log.Warn("log gateway event", zap.String("order_id", n.OrderID), zap.Error(err))
		return nil
	}
	return ev
}

func (s *FeeService) finishEvent(ctx context.Context, ev *model.GatewayEventModel, status model.GatewayEventStatus, msg string) {
	if ev == nil {
		return
	}
	now := s.now()
	ev.GatewayEventStatus = status
	ev.GatewayEventProcessedAt = &now
	if msg != "" {
		ev.GatewayEventError = &msg
	}
	if err := s.store.UpdateGatewayEvent(ctx, ev); err != nil {
		s.log.Warn("update gateway event", zap.String("order_id", ev.GatewayEventOrderID), zap.Error(err))
	}
}

/* ===================== stale order reaper ===================== */

const reaperBatch = 200

// ExpireStaleOrders fails "created" orders older than the order TTL and
// releases their months. Returns how many were expired.
func (s *FeeService) ExpireStaleOrders(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.orderTTL)
	stale, err := s.store.ListStaleOnlineOrders(ctx, cutoff, reaperBatch)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, p := range stale {
		if err := s.failOrder(ctx, p.OnlinePaymentOrderID, "expired after "+s.orderTTL.String()); err != nil {
			return expired, err
		}
		expired++
	}
	if expired > 0 {
		ordersExpired.Add(float64(expired))
		s.log.Info("stale gateway orders expired", zap.Int("count", expired), zap.Time("cutoff", cutoff))
	}
	return expired, nil
}
