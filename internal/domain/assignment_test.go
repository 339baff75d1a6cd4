package domain

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from CallStatus
		to   CallStatus
		want bool
	}{
		{"pending to contacted", CallStatusPending, CallStatusContacted, true},
		{"pending cannot close directly", CallStatusPending, CallStatusClosedNoSale, false},
		{"pending cannot sell directly", CallStatusPending, CallStatusSalesGenerated, false},
		{"pending stays pending rejected", CallStatusPending, CallStatusPending, false},
		{"contacted to sale", CallStatusContacted, CallStatusSalesGenerated, true},
		{"contacted to follow-up", CallStatusContacted, CallStatusFollowUpScheduled, true},
		{"contacted to closed", CallStatusContacted, CallStatusClosedNoSale, true},
		{"contacted again", CallStatusContacted, CallStatusContacted, true},
		{"contacted cannot regress", CallStatusContacted, CallStatusPending, false},
		{"follow-up to contacted", CallStatusFollowUpScheduled, CallStatusContacted, true},
		{"follow-up rescheduled", CallStatusFollowUpScheduled, CallStatusFollowUpScheduled, true},
		{"follow-up to sale", CallStatusFollowUpScheduled, CallStatusSalesGenerated, true},
		{"sale is terminal", CallStatusSalesGenerated, CallStatusContacted, false},
		{"closed is terminal", CallStatusClosedNoSale, CallStatusFollowUpScheduled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestValidCallStatus(t *testing.T) {
	for _, status := range []CallStatus{
		CallStatusPending, CallStatusContacted, CallStatusSalesGenerated,
		CallStatusFollowUpScheduled, CallStatusClosedNoSale,
	} {
		if !ValidCallStatus(status) {
			t.Errorf("ValidCallStatus(%s) = false", status)
		}
	}
	if ValidCallStatus("Escalated") {
		t.Error("ValidCallStatus accepted an unknown status")
	}
}
