package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the fizzle counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	CastAttempts       *prometheus.CounterVec
	GritSpent          *prometheus.CounterVec
	GritRejected       prometheus.Counter
	DesperationOffered prometheus.Counter
	DesperationTaken   *prometheus.CounterVec
	SlotsConsumed      *prometheus.CounterVec
	SpellLookups       *prometheus.CounterVec
}

// New registers the counters with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CastAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameCastAttempts,
				Help: HelpTextCastAttempts,
			},
			[]string{LabelOutcome},
		),
		GritSpent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameGritSpent,
				Help: HelpTextGritSpent,
			},
			[]string{LabelCost},
		),
		GritRejected: factory.NewCounter(
			prometheus.CounterOpts{
				Name: MetricNameGritRejected,
				Help: HelpTextGritRejected,
			},
		),
		DesperationOffered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: MetricNameDesperationOffered,
				Help: HelpTextDesperationOffered,
			},
		),
		DesperationTaken: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameDesperationTaken,
				Help: HelpTextDesperationTaken,
			},
			[]string{LabelResult},
		),
		SlotsConsumed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameSlotsConsumed,
				Help: HelpTextSlotsConsumed,
			},
			[]string{LabelPool},
		),
		SpellLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameSpellLookups,
				Help: HelpTextSpellLookups,
			},
			[]string{LabelCache},
		),
	}
}

func (m *Metrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.CastAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordGritSpent(cost int) {
	if m == nil {
		return
	}
	m.GritSpent.WithLabelValues(strconv.Itoa(cost)).Inc()
}

func (m *Metrics) RecordGritRejected() {
	if m == nil {
		return
	}
	m.GritRejected.Inc()
}

func (m *Metrics) RecordDesperationOffered() {
	if m == nil {
		return
	}
	m.DesperationOffered.Inc()
}

// RecordDesperationTaken counts an accepted reroll; result is "success" or "fizzle"
func (m *Metrics) RecordDesperationTaken(result string) {
	if m == nil {
		return
	}
	m.DesperationTaken.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordSlotConsumed(pool string) {
	if m == nil {
		return
	}
	m.SlotsConsumed.WithLabelValues(pool).Inc()
}

func (m *Metrics) RecordSpellLookup(cache string) {
	if m == nil {
		return
	}
	m.SpellLookups.WithLabelValues(cache).Inc()
}
