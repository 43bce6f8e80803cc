package analyze

import "testing"

func TestSeverityForCount(t *testing.T) {
	cases := []struct {
		n    int
		want Severity
	}{
		{0, SeverityDanger},
		{4, SeverityDanger},
		{5, SeverityTight},
		{19, SeverityTight},
		{20, SeverityOkay},
		{99, SeverityOkay},
		{100, SeverityGood},
		{100000, SeverityGood},
	}
	for _, tc := range cases {
		if got := SeverityForCount(tc.n); got != tc.want {
			t.Errorf("SeverityForCount(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestSeverityForComplete(t *testing.T) {
	// a filled slot is good exactly when its word is real
	if got := SeverityForComplete(1); got != SeverityGood {
		t.Errorf("complete-in-corpus = %s", got)
	}
	if got := SeverityForComplete(0); got != SeverityDanger {
		t.Errorf("complete-not-in-corpus = %s", got)
	}
}

func TestCrossingScoreSeverity(t *testing.T) {
	if got := UnconstrainedScore().Severity(); got != SeverityGood {
		t.Errorf("unconstrained severity = %s", got)
	}
	if got := CountScore(0).Severity(); got != SeverityDanger {
		t.Errorf("zero severity = %s", got)
	}
	if got := CountScore(3).Severity(); got != SeverityDanger {
		t.Errorf("count 3 severity = %s", got)
	}
}

func TestCrossingScoreLess(t *testing.T) {
	// ascending by safety: 0 < 3 < 100 < unconstrained
	ordered := []CrossingScore{
		CountScore(0),
		CountScore(3),
		CountScore(100),
		UnconstrainedScore(),
	}
	for i := 0; i < len(ordered); i++ {
		for j := 0; j < len(ordered); j++ {
			got := ordered[i].Less(ordered[j])
			if want := i < j; got != want {
				t.Errorf("ordered[%d].Less(ordered[%d]) = %v, want %v", i, j, got, want)
			}
		}
	}
	// zero is a real count, distinct from unconstrained
	if UnconstrainedScore().IsUnconstrained() == false {
		t.Error("unconstrained not tagged")
	}
	if CountScore(0).IsUnconstrained() {
		t.Error("zero count tagged unconstrained")
	}
}
