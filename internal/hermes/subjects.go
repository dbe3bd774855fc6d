package hermes

const (
	SubjectAssessmentScoredAll = "readiness.assessment.*.scored"
	SubjectAssessmentFailed    = "readiness.assessment.failed"

	StreamName     = "READINESS_EVENTS"
	StreamSubjects = "readiness.assessment.>"
	StreamMaxAge   = "720h" // 30 days
)

func SubjectAssessmentScored(id string) string { return "readiness.assessment." + id + ".scored" }
