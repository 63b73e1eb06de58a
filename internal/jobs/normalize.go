package jobs

import (
	"strings"

	"github.com/jonathan/application-tracker/internal/types"
)

// Normalize trims keyword and skill lists, drops empty entries and removes case-insensitive
// duplicates, keeping the first spelling seen. Absent lists become empty ones.
func Normalize(job *types.JobDescription) {
	if job == nil {
		return
	}

	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	job.Keywords = dedupe(job.Keywords)

	if job.ExtractedInfo == nil {
		job.ExtractedInfo = &types.ExtractedInfo{}
	}
	job.ExtractedInfo.RequiredSkills = dedupe(job.ExtractedInfo.RequiredSkills)
	job.ExtractedInfo.PreferredSkills = dedupe(job.ExtractedInfo.PreferredSkills)
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
