package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// Stage – immutable value object
// ---------------------------------------------------------------------------

// Stage represents the lifecycle stage of an origination conversation.
type Stage struct {
	value string
}

const (
	stageGreeting          = "GREETING"
	stageNeedsDiscovery    = "NEEDS_DISCOVERY"
	stageVerifying         = "VERIFYING"
	stageUnderwriting      = "UNDERWRITING"
	stageSalarySlipPending = "SALARY_SLIP_PENDING"
	stageApproved          = "APPROVED"
	stageRejected          = "REJECTED"
	stageDocumentIssued    = "DOCUMENT_ISSUED"
	stageClosed            = "CLOSED"
)

var (
	StageGreeting          = Stage{value: stageGreeting}
	StageNeedsDiscovery    = Stage{value: stageNeedsDiscovery}
	StageVerifying         = Stage{value: stageVerifying}
	StageUnderwriting      = Stage{value: stageUnderwriting}
	StageSalarySlipPending = Stage{value: stageSalarySlipPending}
	StageApproved          = Stage{value: stageApproved}
	StageRejected          = Stage{value: stageRejected}
	StageDocumentIssued    = Stage{value: stageDocumentIssued}
	StageClosed            = Stage{value: stageClosed}
)

var validStages = map[string]Stage{
	stageGreeting:          StageGreeting,
	stageNeedsDiscovery:    StageNeedsDiscovery,
	stageVerifying:         StageVerifying,
	stageUnderwriting:      StageUnderwriting,
	stageSalarySlipPending: StageSalarySlipPending,
	stageApproved:          StageApproved,
	stageRejected:          StageRejected,
	stageDocumentIssued:    StageDocumentIssued,
	stageClosed:            StageClosed,
}

// allowedTransitions is the closed transition table of the conversation
// machine. SalarySlipPending -> Underwriting is the only back-edge; Closed is
// reachable from every non-terminal stage as the explicit escape hatch.
var allowedTransitions = map[string][]string{
	stageGreeting:          {stageNeedsDiscovery, stageClosed},
	stageNeedsDiscovery:    {stageVerifying, stageClosed},
	stageVerifying:         {stageUnderwriting, stageRejected, stageClosed},
	stageUnderwriting:      {stageApproved, stageSalarySlipPending, stageRejected, stageClosed},
	stageSalarySlipPending: {stageUnderwriting, stageRejected, stageClosed},
	stageApproved:          {stageDocumentIssued, stageClosed},
	stageDocumentIssued:    {stageClosed},
	stageRejected:          {},
	stageClosed:            {},
}

// NewStage creates a Stage from a raw string.
func NewStage(s string) (Stage, error) {
	v, ok := validStages[s]
	if !ok {
		return Stage{}, fmt.Errorf("invalid conversation stage: %q", s)
	}
	return v, nil
}

// String returns the string representation of the stage.
func (s Stage) String() string { return s.value }

// IsZero returns true if the stage has not been initialised.
func (s Stage) IsZero() bool { return s.value == "" }

// Equal returns true when both stages carry the same value.
func (s Stage) Equal(other Stage) bool { return s.value == other.value }

// IsTerminal reports whether no further transitions are permitted.
func (s Stage) IsTerminal() bool {
	return len(allowedTransitions[s.value]) == 0
}

// CanTransitionTo reports whether the transition table permits moving from s
// to next.
func (s Stage) CanTransitionTo(next Stage) bool {
	for _, v := range allowedTransitions[s.value] {
		if v == next.value {
			return true
		}
	}
	return false
}
