package model

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Approved", "Done", "Cancelled"} {
		got, err := ParseStatus(s)
		if err != nil || string(got) != s {
			t.Fatalf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	for _, s := range []string{"", "approved", "Canceled", "Archived"} {
		if _, err := ParseStatus(s); err == nil {
			t.Fatalf("ParseStatus(%q): expected error", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{"", StatusApproved, true},
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusDone, false},
		{StatusPending, StatusCancelled, false},
		{StatusApproved, StatusDone, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusPending, false},
		{StatusCancelled, StatusApproved, true},
		{StatusCancelled, StatusDone, false},
		{StatusDone, StatusApproved, false},
		{StatusDone, StatusDone, true},
		{"Archived", StatusApproved, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestEffectiveStatus(t *testing.T) {
	if got := (Reservation{}).EffectiveStatus(); got != StatusPending {
		t.Fatalf("expected Pending for empty status, got %q", got)
	}
	if got := (Reservation{Status: StatusDone}).EffectiveStatus(); got != StatusDone {
		t.Fatalf("expected Done, got %q", got)
	}
	if StatusDone.IsLive() || StatusCancelled.IsLive() || !StatusApproved.IsLive() || !Status("").IsLive() {
		t.Fatalf("IsLive mismatch")
	}
}
