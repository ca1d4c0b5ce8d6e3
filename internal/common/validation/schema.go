package validation

import (
	"fmt"
	"strings"
	"sync"

	"tutor-onboarding/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// SurveySchema is the JSON schema of a serialized survey as accepted by the
// matching service.
const SurveySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["gradeLevel", "subjects", "goals", "currentChallenges", "teachingMode",
    "preferredTeachingStyle", "availableTime", "budgetRange", "studyFrequency",
    "learningPace", "priorities"],
  "properties": {
    "gradeLevel": {"type": "string", "minLength": 1},
    "subjects": {
      "type": "array", "minItems": 1, "maxItems": 5,
      "items": {"type": "string", "minLength": 1}
    },
    "goals": {"type": "array", "minItems": 1, "uniqueItems": true, "items": {"type": "string"}},
    "currentChallenges": {
      "type": "array", "minItems": 1, "maxItems": 3, "uniqueItems": true,
      "items": {"type": "string"}
    },
    "teachingMode": {"type": "string", "enum": ["ONLINE", "OFFLINE", "BOTH"]},
    "preferredTeachingStyle": {"type": "array", "minItems": 1, "uniqueItems": true, "items": {"type": "string"}},
    "availableTime": {"type": "array", "minItems": 1, "uniqueItems": true, "items": {"type": "string"}},
    "budgetRange": {
      "type": "object",
      "required": ["min", "max"],
      "properties": {
        "min": {"type": "integer", "minimum": 0},
        "max": {"type": "integer", "minimum": 1}
      }
    },
    "studyFrequency": {"type": "integer", "minimum": 1, "maximum": 5},
    "learningPace": {"type": "string", "enum": ["slow", "moderate", "fast", "flexible"]},
    "priorities": {
      "type": "object",
      "required": ["experience", "communication", "qualification", "price", "location"],
      "properties": {
        "experience": {"$ref": "#/definitions/rating"},
        "communication": {"$ref": "#/definitions/rating"},
        "qualification": {"$ref": "#/definitions/rating"},
        "price": {"$ref": "#/definitions/rating"},
        "location": {"$ref": "#/definitions/rating"}
      }
    }
  },
  "definitions": {
    "rating": {"type": "integer", "minimum": 1, "maximum": 5}
  }
}`

// ValidationResult is the outcome of a schema check.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError describes a single failing field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var (
	surveySchemaOnce sync.Once
	surveySchema     *gojsonschema.Schema
	surveySchemaErr  error
)

func compiledSurveySchema() (*gojsonschema.Schema, error) {
	surveySchemaOnce.Do(func() {
		surveySchema, surveySchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(SurveySchema))
	})
	return surveySchema, surveySchemaErr
}

// ValidateSurvey checks a serialized survey (struct or map) against SurveySchema.
func ValidateSurvey(doc interface{}) (*ValidationResult, error) {
	schema, err := compiledSurveySchema()
	if err != nil {
		return nil, fmt.Errorf("compile survey schema: %w", err)
	}
	return validate(schema, doc)
}

// ValidateDocument checks doc against an arbitrary JSON schema.
func ValidateDocument(schemaJSON string, doc interface{}) (*ValidationResult, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return validate(schema, doc)
}

func validate(schema *gojsonschema.Schema, doc interface{}) (*ValidationResult, error) {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// SurveyPayloadError validates doc and returns an INVALID_PAYLOAD error when it
// does not conform, nil otherwise.
func SurveyPayloadError(doc interface{}) error {
	res, err := ValidateSurvey(doc)
	if err != nil {
		return errors.NewInvalidPayloadError(err.Error())
	}
	if res.Valid {
		return nil
	}
	return errors.NewInvalidPayloadError(strings.Join(res.GetErrorMessages(), "; "))
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors reports whether field or one of its nested fields failed.
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			return true
		}
	}
	return false
}
