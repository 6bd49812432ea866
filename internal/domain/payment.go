package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
)

// Validation errors for payments.
var (
	ErrInvalidAmount        = validationError("payment amount must be positive")
	ErrInvalidCurrency      = validationError("currency must be a 3 letter ISO code")
	ErrInvalidPaymentStatus = validationError("invalid payment status")
)

// Payment is a license payment made by an organization.
type Payment struct {
	ID             uuid.UUID     `json:"id"`
	OrganizationID uuid.UUID     `json:"organization_id"`
	AmountCents    int64         `json:"amount_cents"`
	Currency       string        `json:"currency"`
	Method         string        `json:"method"`
	Period         string        `json:"period"`
	Status         PaymentStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewPayment creates a payment record for organizationID.
func NewPayment(
	organizationID uuid.UUID,
	amountCents int64,
	currency, method, period string,
	status PaymentStatus,
) (*Payment, error) {
	p := &Payment{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		AmountCents:    amountCents,
		Currency:       strings.ToUpper(strings.TrimSpace(currency)),
		Method:         strings.TrimSpace(method),
		Period:         strings.TrimSpace(period),
		Status:         status,
		CreatedAt:      time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the Payment has valid data.
func (p *Payment) Validate() error {
	if p.ID == uuid.Nil || p.OrganizationID == uuid.Nil {
		return ErrInvalidID
	}
	if p.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	if len(p.Currency) != 3 {
		return ErrInvalidCurrency
	}
	switch p.Status {
	case PaymentPaid, PaymentPending, PaymentFailed:
		return nil
	default:
		return ErrInvalidPaymentStatus
	}
}

// PaymentView is a payment joined with its organization's name.
type PaymentView struct {
	Payment
	OrganizationName string `json:"organization"`
}
