package enums

import "fmt"

// ReturnStatus walks a return order through receiving and quality control.
type ReturnStatus string

const (
	ReturnStatusInitiated  ReturnStatus = "Return Initiated"
	ReturnStatusInProgress ReturnStatus = "Return in Progress"
	ReturnStatusQC         ReturnStatus = "QC in Progress"
	ReturnStatusReturned   ReturnStatus = "Returned"
	ReturnStatusScrapped   ReturnStatus = "Scrapped"
	ReturnStatusCancelled  ReturnStatus = "Cancelled"
)

var validReturnStatuses = []ReturnStatus{
	ReturnStatusInitiated,
	ReturnStatusInProgress,
	ReturnStatusQC,
	ReturnStatusReturned,
	ReturnStatusScrapped,
	ReturnStatusCancelled,
}

// returnTransitions lists the allowed next steps for each state.
var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnStatusInitiated:  {ReturnStatusInProgress, ReturnStatusCancelled},
	ReturnStatusInProgress: {ReturnStatusQC, ReturnStatusCancelled},
	ReturnStatusQC:         {ReturnStatusReturned, ReturnStatusScrapped},
	ReturnStatusReturned:   {},
	ReturnStatusScrapped:   {},
	ReturnStatusCancelled:  {},
}

// String implements fmt.Stringer.
func (s ReturnStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ReturnStatus.
func (s ReturnStatus) IsValid() bool {
	for _, candidate := range validReturnStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the target state is reachable from s.
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	for _, candidate := range returnTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// ParseReturnStatus converts raw input into a ReturnStatus.
func ParseReturnStatus(value string) (ReturnStatus, error) {
	for _, candidate := range validReturnStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid return status %q", value)
}
