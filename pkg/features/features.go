// Package features defines the tenant-level feature contract shared by the
// offline training pipeline and online risk serving: raw payment/complaint
// records in, a fixed-schema numeric vector out.
package features

import (
	"time"

	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/stats"
)

// PaymentRecord is one historical payment of a tenant.
type PaymentRecord struct {
	TenantID    string
	Amount      float64
	Date        time.Time
	Status      string // Paid, Pending, Overdue
	MonthlyRent float64
}

// ComplaintRecord is one historical complaint of a tenant.
type ComplaintRecord struct {
	ID       string
	TenantID string
	Text     string
	Category string
	Status   string
}

// Feature column names. The order in DefaultColumns is the wire contract
// between training and serving; it is persisted in the artifact bundle and
// never changes without retraining.
const (
	ColMonthlyRent              = "monthly_rent"
	ColAvgPayment               = "avg_payment"
	ColPaymentConsistency       = "payment_consistency"
	ColDelayRate                = "delay_rate"
	ColTotalComplaints          = "total_complaints"
	ColComplaintRate            = "complaint_rate"
	ColAvgDaysSincePayment      = "avg_days_since_payment"
	ColRoomTypeEncoded          = "room_type_encoded"
	ColComplaintCategoryEncoded = "complaint_category_encoded"
	ColComplaintStatusEncoded   = "complaint_status_encoded"
)

// DelayedStatus reports whether a payment status counts as delayed.
func DelayedStatus(status string) bool {
	return status == "Overdue" || status == "Pending"
}

// TenantFeatureVector is the aggregate profile of one tenant. All fields are
// derived, never supplied by untrusted callers directly; serving input goes
// through FeatureColumnManifest.VectorFromMap instead.
type TenantFeatureVector struct {
	AvgPayment          float64
	StdPayment          float64
	MinPayment          float64
	MaxPayment          float64
	MonthlyRent         float64
	DelayCount          int
	TotalPayments       int
	DelayRate           float64
	PaymentConsistency  float64
	TotalComplaints     int
	ComplaintRate       float64
	AvgDaysSincePayment float64
}

// AsMap exposes the aggregates under their column names so they can be fed
// back through the manifest. Extra keys beyond the manifest are fine; the
// manifest ignores them.
func (v TenantFeatureVector) AsMap() map[string]float64 {
	return map[string]float64{
		ColMonthlyRent:         v.MonthlyRent,
		ColAvgPayment:          v.AvgPayment,
		"std_payment":          v.StdPayment,
		"min_payment":          v.MinPayment,
		"max_payment":          v.MaxPayment,
		"delay_count":          float64(v.DelayCount),
		"total_payments":       float64(v.TotalPayments),
		ColDelayRate:           v.DelayRate,
		ColPaymentConsistency:  v.PaymentConsistency,
		ColTotalComplaints:     float64(v.TotalComplaints),
		ColComplaintRate:       v.ComplaintRate,
		ColAvgDaysSincePayment: v.AvgDaysSincePayment,
	}
}

// Engineer derives tenant aggregates from raw history. ReferenceDate anchors
// the days-since-payment feature so training and backtests are reproducible.
type Engineer struct {
	ReferenceDate time.Time
}

// TenantVector aggregates one tenant's payments and complaints.
// With no payments every ratio is 0; a single payment yields StdPayment 0.
func (e Engineer) TenantVector(payments []PaymentRecord, complaints []ComplaintRecord) TenantFeatureVector {
	var v TenantFeatureVector
	v.TotalComplaints = len(complaints)
	if len(payments) == 0 {
		return v
	}

	amounts := make([]float64, len(payments))
	days := make([]float64, len(payments))
	for i, p := range payments {
		amounts[i] = p.Amount
		days[i] = e.ReferenceDate.Sub(p.Date).Hours() / 24
		if DelayedStatus(p.Status) {
			v.DelayCount++
		}
	}
	v.AvgPayment = stats.Mean(amounts)
	v.StdPayment = stats.Std(amounts)
	v.MinPayment, v.MaxPayment = stats.MinMax(amounts)
	v.MonthlyRent = payments[0].MonthlyRent
	v.TotalPayments = len(payments)
	v.DelayRate = float64(v.DelayCount) / float64(v.TotalPayments)
	if v.AvgPayment != 0 {
		v.PaymentConsistency = v.StdPayment / v.AvgPayment
	}
	v.ComplaintRate = float64(v.TotalComplaints) / float64(v.TotalPayments)
	v.AvgDaysSincePayment = stats.Mean(days)
	return v
}
