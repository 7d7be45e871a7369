package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

func TestValidateReportsJSONFieldNames(t *testing.T) {
	err := Validate(CreateDepartmentRequest{Name: "", Email: "nope"})
	require.True(t, apperrors.IsValidation(err))
	details := apperrors.ToDomainError(err).Details
	assert.Equal(t, "required", details["name"])
	assert.Equal(t, "email", details["email"])

	err = Validate(FeedbackRequest{Rating: 9})
	require.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "max", apperrors.ToDomainError(err).Details["rating"])

	assert.NoError(t, Validate(ForwardRequest{DepartmentID: 3}))
}
