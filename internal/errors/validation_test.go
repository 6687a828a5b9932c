package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-quest/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("title", "is required")
	ve.AddFieldError("scenes", "must not be empty")
	ve.AddFieldErrorf("redis.pool_size", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Contains(ve.Error(), "title: is required")
	s.Assert().Contains(ve.Error(), "scenes: must not be empty")
	s.Assert().Contains(ve.Error(), "redis.pool_size: must be at least 1")

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("stages", "must not be empty").
		Fieldf("scenes[3].nextSceneId", "references unknown scene %q", "s99").
		RequiredField("characters[0].id").
		InvalidField("scenes[0].type", "unknown scene type")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	err := vb.Build()
	s.Assert().Nil(err)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "scene_1", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  scene_1  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("redis.pool_size", 0, 1, 1000, vb)
	errors.ValidateRange("redis.db", 3, 0, 15, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["redis.pool_size"][0], "must be between 1 and 1000")
	s.Assert().NotContains(validationErrors, "redis.db")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	levels := []string{"debug", "info", "warn", "error"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("log_level", "verbose", levels, vb)
	errors.ValidateEnum("other_level", "info", levels, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["log_level"][0], "must be one of: debug, info, warn, error")
	s.Assert().NotContains(validationErrors, "other_level")
}
