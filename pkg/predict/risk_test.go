package predict

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskScoreBounds(t *testing.T) {
	p := NewRiskPredictor(newTestRegistry(t), nil, nil)

	for _, f := range []map[string]float64{
		nil,
		{},
		{"monthly_rent": 18000},
		{"monthly_rent": 12000, "delay_rate": 0.95, "avg_days_since_payment": 60},
		{"monthly_rent": -5, "delay_rate": 1e9},
	} {
		res := p.Predict(f)
		assert.GreaterOrEqual(t, res.RiskScore, 0.0)
		assert.LessOrEqual(t, res.RiskScore, 1.0)
	}
}

func TestRiskSeparatesProfiles(t *testing.T) {
	p := NewRiskPredictor(newTestRegistry(t), nil, nil)

	good := p.Predict(map[string]float64{
		"monthly_rent": 12000, "avg_payment": 12000, "payment_consistency": 0.01,
		"delay_rate": 0.0, "total_complaints": 1, "complaint_rate": 0.1,
		"avg_days_since_payment": 5,
	})
	bad := p.Predict(map[string]float64{
		"monthly_rent": 12000, "avg_payment": 10500, "payment_consistency": 0.4,
		"delay_rate": 0.95, "total_complaints": 8, "complaint_rate": 0.9,
		"avg_days_since_payment": 58,
	})

	assert.False(t, good.WillDelay)
	assert.True(t, bad.WillDelay)
	assert.Greater(t, bad.RiskScore, good.RiskScore)
}

func TestRiskFlagConsistentWithScore(t *testing.T) {
	p := NewRiskPredictor(newTestRegistry(t), nil, nil)
	res := p.Predict(map[string]float64{"delay_rate": 0.9, "avg_days_since_payment": 55})
	if res.WillDelay {
		assert.GreaterOrEqual(t, res.RiskScore, 0.5)
	}
	if res.RiskScore > 0.5 {
		assert.True(t, res.WillDelay)
	}
}

func TestRiskUnknownKeysIgnored(t *testing.T) {
	p := NewRiskPredictor(newTestRegistry(t), nil, nil)

	base := map[string]float64{"monthly_rent": 18000}
	withExtra := map[string]float64{"monthly_rent": 18000, "unused_field": 42}
	assert.Equal(t, p.Predict(base), p.Predict(withExtra))
}

func TestRiskIdempotent(t *testing.T) {
	p := NewRiskPredictor(newTestRegistry(t), nil, nil)
	f := map[string]float64{"monthly_rent": 18000, "delay_rate": 0.5}
	first := p.Predict(f)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, p.Predict(f))
	}
}

func TestRiskLogsEntry(t *testing.T) {
	log := &capturingLog{}
	p := NewRiskPredictor(newTestRegistry(t), log, nil)

	p.PredictAs("portal", map[string]float64{"monthly_rent": 18000})
	require.Len(t, log.entries, 1)
	assert.Equal(t, ModelTypePaymentDelay, log.entries[0].ModelType)
	assert.Equal(t, "portal", log.entries[0].CallerID)
}

func TestRiskMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	p := NewRiskPredictor(newTestRegistry(t), nil, m)

	p.Predict(map[string]float64{"monthly_rent": 18000})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Predictions.WithLabelValues(ModelTypePaymentDelay)))
}
