package metrics

// Metric names
const (
	MetricNameCastAttempts       = "fizzle_cast_attempts_total"
	MetricNameGritSpent          = "fizzle_grit_spent_total"
	MetricNameGritRejected       = "fizzle_grit_rejected_total"
	MetricNameDesperationOffered = "fizzle_desperation_offered_total"
	MetricNameDesperationTaken   = "fizzle_desperation_taken_total"
	MetricNameSlotsConsumed      = "fizzle_slots_consumed_total"
	MetricNameSpellLookups       = "fizzle_spell_lookups_total"
)

// Metric help text
const (
	HelpTextCastAttempts       = "Cast attempts resolved, by outcome"
	HelpTextGritSpent          = "Grit tiers applied, by exhaustion cost"
	HelpTextGritRejected       = "Grit choices rejected for exceeding the exhaustion ceiling"
	HelpTextDesperationOffered = "Desperation rerolls offered after a fizzle"
	HelpTextDesperationTaken   = "Desperation rerolls accepted, by reroll result"
	HelpTextSlotsConsumed      = "Spell slots consumed by fizzles, by pool"
	HelpTextSpellLookups       = "Spell level lookups against the dnd5e API, by cache result"
)

// Label names
const (
	LabelOutcome = "outcome"
	LabelCost    = "cost"
	LabelResult  = "result"
	LabelPool    = "pool"
	LabelCache   = "cache"
)

// Cache label values
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)
