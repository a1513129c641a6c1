package subscription

import (
	"fmt"
	"math/bits"
	"time"
)

// RefundPolicy decides how much of the paid amount goes back to the
// subscriber when an active subscription is cancelled at now.
type RefundPolicy interface {
	RefundFor(s *Subscription, now time.Time) uint64
	Name() string
}

// NoRefund keeps the whole payment.
type NoRefund struct{}

func (NoRefund) RefundFor(*Subscription, time.Time) uint64 { return 0 }
func (NoRefund) Name() string                              { return "none" }

// FullRefund returns the whole payment.
type FullRefund struct{}

func (FullRefund) RefundFor(s *Subscription, now time.Time) uint64 {
	if !s.IsActive(now) {
		return 0
	}
	return s.AmountPaid()
}

func (FullRefund) Name() string { return "full" }

// ProRataRefund returns the share of the payment covering whole unused
// billing periods. A subscription shorter than one period counts as one
// period and therefore refunds nothing once started.
type ProRataRefund struct {
	Period time.Duration
}

func (p ProRataRefund) Name() string { return "prorata" }

func (p ProRataRefund) RefundFor(s *Subscription, now time.Time) uint64 {
	if p.Period <= 0 || !s.IsActive(now) || s.AmountPaid() == 0 {
		return 0
	}

	total := uint64(s.Duration() / p.Period)
	if total == 0 {
		total = 1
	}
	unused := uint64(s.Remaining(now) / p.Period)
	if unused > total {
		unused = total
	}

	// unused <= total keeps the quotient within 64 bits
	hi, lo := bits.Mul64(s.AmountPaid(), unused)
	quo, _ := bits.Div64(hi, lo, total)
	return quo
}

// DefaultRefundPeriod is the billing period used by pro-rata refunds.
const DefaultRefundPeriod = 28 * 24 * time.Hour

// NewRefundPolicy resolves a configured mode name.
func NewRefundPolicy(mode string, period time.Duration) (RefundPolicy, error) {
	switch mode {
	case "", "none":
		return NoRefund{}, nil
	case "full":
		return FullRefund{}, nil
	case "prorata":
		if period <= 0 {
			period = DefaultRefundPeriod
		}
		return ProRataRefund{Period: period}, nil
	default:
		return nil, fmt.Errorf("unknown refund mode %q", mode)
	}
}
