package schedule

import "testing"

func TestShuttlecockFee(t *testing.T) {
	if got := ShuttlecockFee(0); got != 0 {
		t.Errorf("ShuttlecockFee(0) = %d, want 0", got)
	}
	if got := ShuttlecockFee(2); got != 6000 {
		t.Errorf("ShuttlecockFee(2) = %d, want 6000", got)
	}
	if got := ShuttlecockFee(5); got != 15000 {
		t.Errorf("ShuttlecockFee(5) = %d, want 15000", got)
	}
}

func TestFlatSessionFee(t *testing.T) {
	if got := FlatSessionFee(); got != 18000 {
		t.Errorf("FlatSessionFee() = %d, want 18000", got)
	}
}

func TestMembershipFee(t *testing.T) {
	got, err := MembershipFee(4)
	if err != nil || got != 40000 {
		t.Errorf("MembershipFee(4) = %d, %v; want 40000, nil", got, err)
	}
	got, err = MembershipFee(5)
	if err != nil || got != 50000 {
		t.Errorf("MembershipFee(5) = %d, %v; want 50000, nil", got, err)
	}

	for _, weeks := range []int{0, 3, 6, -1} {
		if _, err := MembershipFee(weeks); err == nil {
			t.Errorf("MembershipFee(%d): want error, got nil", weeks)
		}
	}
}
