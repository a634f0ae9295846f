package pipeline

// Stage identifies where a pipeline run currently is in its state machine.
type Stage string

// The fixed stage enumeration. The machine runs pending through completed;
// intake_failed, failed, completed, and organization_failed are terminal.
const (
	StagePending            Stage = "pending"
	StageIntakeRunning      Stage = "intake_running"
	StageIntakeFailed       Stage = "intake_failed"
	StageIntakeDone         Stage = "intake_done"
	StageVisionRunning      Stage = "vision_running"
	StageTextRunning        Stage = "text_running"
	StageRoutingRunning     Stage = "routing_running"
	StageRoutingDone        Stage = "routing_done"
	StageOrganizingRunning  Stage = "organizing_running"
	StageCompleted          Stage = "completed"
	StageOrganizationFailed Stage = "organization_failed"
	StageFailed             Stage = "failed"
)

// Terminal reports whether the machine halts at this stage.
func (s Stage) Terminal() bool {
	switch s {
	case StageCompleted, StageOrganizationFailed, StageFailed, StageIntakeFailed:
		return true
	}
	return false
}

func (s Stage) String() string {
	return string(s)
}
