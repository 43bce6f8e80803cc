package analyze

// Severity classifies how much room a slot has left.
type Severity string

const (
	SeverityGood   Severity = "good"
	SeverityOkay   Severity = "okay"
	SeverityTight  Severity = "tight"
	SeverityDanger Severity = "danger"
)

// Band thresholds. Stable by design; UI color coding depends on them.
const (
	ThresholdGood  = 100
	ThresholdOkay  = 20
	ThresholdTight = 5
)

// SeverityForCount maps a raw match count onto a band.
func SeverityForCount(n int) Severity {
	switch {
	case n >= ThresholdGood:
		return SeverityGood
	case n >= ThresholdOkay:
		return SeverityOkay
	case n >= ThresholdTight:
		return SeverityTight
	default:
		return SeverityDanger
	}
}

// SeverityForComplete classifies a fully filled slot: the word is
// either in the corpus or it isn't.
func SeverityForComplete(n int) Severity {
	if n >= 1 {
		return SeverityGood
	}
	return SeverityDanger
}

// CrossingScore is the constraint pressure a placement puts on its
// neighbors: either a concrete count of remaining fills, or
// "unconstrained" for slots nobody has started yet. The two cases are
// distinct on the wire and in comparisons; zero always means
// impossible, never "not evaluated".
type CrossingScore struct {
	count         int
	unconstrained bool
}

// CountScore wraps a concrete remaining-fill count.
func CountScore(n int) CrossingScore {
	return CrossingScore{count: n}
}

// UnconstrainedScore marks a crossing nobody has started.
func UnconstrainedScore() CrossingScore {
	return CrossingScore{unconstrained: true}
}

// IsUnconstrained reports the tagged case.
func (s CrossingScore) IsUnconstrained() bool { return s.unconstrained }

// Count returns the concrete count. Only meaningful when the score is
// not unconstrained.
func (s CrossingScore) Count() int { return s.count }

// Severity maps the score onto a band. Unconstrained is good.
func (s CrossingScore) Severity() Severity {
	if s.unconstrained {
		return SeverityGood
	}
	return SeverityForCount(s.count)
}

// Less orders scores ascending by safety: any count below any larger
// count, everything below unconstrained.
func (s CrossingScore) Less(other CrossingScore) bool {
	if s.unconstrained {
		return false
	}
	if other.unconstrained {
		return true
	}
	return s.count < other.count
}
