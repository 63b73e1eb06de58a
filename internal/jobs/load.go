package jobs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/application-tracker/internal/schemas"
	"github.com/jonathan/application-tracker/internal/types"
)

// LoadJobDescription loads a job description from a JSON file, validates it and normalizes
// its keyword and skill lists.
func LoadJobDescription(path string) (*types.JobDescription, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return ParseJobDescription(content)
}

// ParseJobDescription decodes and normalizes a job description from JSON.
func ParseJobDescription(content []byte) (*types.JobDescription, error) {
	if err := schemas.Validate(schemas.JobDescription, content); err != nil {
		return nil, &LoadError{
			Message: "schema validation failed",
			Cause:   err,
		}
	}

	var job types.JobDescription
	if err := json.Unmarshal(content, &job); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	Normalize(&job)
	return &job, nil
}
