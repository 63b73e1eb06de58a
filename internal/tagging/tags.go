// Package tagging assigns lowercase keyword tags to chunk text using fixed vocabularies.
package tagging

import (
	"strings"

	"github.com/jonathan/application-tracker/internal/patterns"
	"github.com/jonathan/application-tracker/internal/types"
)

// Fixed tags attached to header chunks
const (
	TagEmail    = "email"
	TagPhone    = "phone"
	TagSocial   = "social"
	TagLocation = "location"
)

// socialSites maps a profile host fragment to the tag it contributes alongside TagSocial
var socialSites = []struct {
	host string
	tag  string
}{
	{"linkedin.com", "linkedin"},
	{"github.com", "github"},
	{"gitlab.com", "gitlab"},
	{"twitter.com", "twitter"},
}

// ExtractTags returns the deduplicated tag set for a chunk's text. The result is
// deterministic for a given (text, type) pair; order follows vocabulary order.
func ExtractTags(text string, chunkType types.ChunkType) []string {
	lower := strings.ToLower(text)
	tags := newTagSet()

	// Plain substring containment throughout, so "java" also fires inside "javascript".
	for _, term := range patterns.TechnologyTerms() {
		if strings.Contains(lower, term) {
			tags.add(term)
		}
	}

	switch chunkType {
	case types.ChunkTypeSummary, types.ChunkTypeSkills:
		for _, term := range patterns.SoftSkillTerms() {
			if strings.Contains(lower, term) {
				tags.add(term)
			}
		}
	case types.ChunkTypeHeader:
		addContactTags(tags, text, lower)
	case types.ChunkTypeExperienceBullet:
		for _, action := range patterns.ActionTags() {
			if strings.Contains(lower, action.Verb) {
				tags.add(action.Tag)
			}
		}
	}

	return tags.list()
}

// SkillTag converts a skill fragment into its tag form: lowercase with spaces replaced by hyphens.
func SkillTag(fragment string) string {
	return strings.Join(strings.Fields(strings.ToLower(fragment)), "-")
}

// Merge combines tag lists, preserving first-seen order and dropping duplicates and empties.
func Merge(lists ...[]string) []string {
	tags := newTagSet()
	for _, list := range lists {
		for _, tag := range list {
			tags.add(strings.ToLower(strings.TrimSpace(tag)))
		}
	}
	return tags.list()
}

func addContactTags(tags *tagSet, text, lower string) {
	if patterns.Email.MatchString(text) {
		tags.add(TagEmail)
	}
	if patterns.Phone.MatchString(text) {
		tags.add(TagPhone)
	}
	if patterns.SocialURL.MatchString(text) {
		tags.add(TagSocial)
		for _, site := range socialSites {
			if strings.Contains(lower, site.host) {
				tags.add(site.tag)
			}
		}
	}
	if patterns.CityState.MatchString(text) || patterns.StreetAddress.MatchString(text) || patterns.PostalCode.MatchString(text) {
		tags.add(TagLocation)
	}
}

type tagSet struct {
	seen  map[string]bool
	order []string
}

func newTagSet() *tagSet {
	return &tagSet{seen: make(map[string]bool)}
}

func (s *tagSet) add(tag string) {
	if tag == "" || s.seen[tag] {
		return
	}
	s.seen[tag] = true
	s.order = append(s.order, tag)
}

func (s *tagSet) list() []string {
	if len(s.order) == 0 {
		return []string{}
	}
	return s.order
}
