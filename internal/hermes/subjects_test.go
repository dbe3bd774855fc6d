package hermes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectAssessmentScored(t *testing.T) {
	s := SubjectAssessmentScored("abc")
	assert.Equal(t, "readiness.assessment.abc.scored", s)
	assert.True(t, strings.HasPrefix(s, strings.TrimSuffix(StreamSubjects, ">")))
}

func TestFailedSubjectIsInStream(t *testing.T) {
	assert.True(t, strings.HasPrefix(SubjectAssessmentFailed, strings.TrimSuffix(StreamSubjects, ">")))
}
