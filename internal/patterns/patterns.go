// Package patterns holds the fixed regular expressions and keyword vocabularies shared by
// section detection, header/summary separation, chunk conversion and tagging.
//
// Everything here is read-only after package initialisation and safe for concurrent use.
package patterns

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/application-tracker/internal/types"
)

// headerPattern maps one compiled section-header expression to the chunk type it opens
type headerPattern struct {
	chunkType types.ChunkType
	re        *regexp.Regexp
}

// Section header patterns are anchored to the whole trimmed line, may carry a markdown
// heading prefix, and may end with a colon. Order matters: the first match wins.
var sectionHeaderTable = []headerPattern{
	{types.ChunkTypeSummary, headerRe(`(?:professional\s+|executive\s+|career\s+)?(?:summary|profile|objective|overview)|about(?:\s+me)?|personal\s+statement|career\s+objective`)},
	{types.ChunkTypeSkills, headerRe(`(?:technical\s+|core\s+|key\s+|professional\s+)?(?:skills|competencies|expertise)(?:\s*(?:&|and)\s*(?:tools|technologies|abilities|interests))?|tech(?:nical)?\s+stack|technologies|tools(?:\s*(?:&|and)\s*technologies)?|(?:programming\s+)?languages`)},
	{types.ChunkTypeExperienceSection, headerRe(`(?:professional\s+|work\s+|relevant\s+|employment\s+)?experience|(?:work|employment|career)\s+history|employment`)},
	{types.ChunkTypeEducation, headerRe(`education(?:al\s+background)?|academic\s+(?:background|history)|education\s*(?:&|and)\s*(?:training|certifications)`)},
	{types.ChunkTypeProjects, headerRe(`(?:personal\s+|selected\s+|key\s+|side\s+|academic\s+)?projects`)},
	{types.ChunkTypeCertifications, headerRe(`certifications?|licenses?(?:\s*(?:&|and)\s*certifications?)?|certifications?\s*(?:&|and)\s*licenses?`)},
	{types.ChunkTypeOther, headerRe(`volunteer(?:ing|\s+experience)?|publications|interests|hobbies|references|activities|awards|honors(?:\s*(?:&|and)\s*awards)?`)},
}

func headerRe(body string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(?:#+\s*)?(?:` + body + `)\s*:?$`)
}

// Contact and identity patterns used by the header/summary separator and the tagger.
var (
	Email         = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	Phone         = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?(?:\(\d{3}\)|\d{3})[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	StreetAddress = regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z0-9.\s]+?\b(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr|court|ct|way|place|pl|suite|apt)\b`)
	SocialURL     = regexp.MustCompile(`(?i)(?:linkedin\.com|github\.com|gitlab\.com|twitter\.com|\bx\.com/|behance\.net|dribbble\.com|medium\.com|stackoverflow\.com|https?://|www\.)`)
	CityState     = regexp.MustCompile(`\b[A-Z][a-zA-Z.]+(?:\s+[A-Z][a-zA-Z.]+)*,\s*[A-Z]{2}\b`)
	PostalCode    = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	PersonalName  = regexp.MustCompile(`^[A-Z][a-zA-Z'’-]+(?:\s+[A-Z][a-zA-Z'’.-]*){1,3}$`)
	SummaryOpener = regexp.MustCompile(`(?i)^(?:i\s|i'm\b|i’m\b|my\s|experienced\b|results[-\s]driven\b|passionate\b|dedicated\b|motivated\b|seasoned\b|highly\b|detail[-\s]oriented\b|proven\b|accomplished\b|dynamic\b|creative\b|skilled\b|versatile\b|a\s|an\s|over\s+\d+|with\s+\d+|\d+\+?\s+years)`)
	Digits        = regexp.MustCompile(`\d`)
)

// Experience patterns used to tell job header lines from bullet lines.
var (
	DateRange          = regexp.MustCompile(`(?i)\b` + datePart + `\s*(?:-|–|—|to|until)\s*(?:` + datePart + `|present|current|now|today)\b`)
	TitleCasedJobTitle = regexp.MustCompile(`^(?:[A-Z][A-Za-z.&/-]*\s+){0,4}(?:` + roleNouns + `)\b`)
	RoleKeyword        = regexp.MustCompile(`(?i)\b(?:` + roleNouns + `)\b`)
	CompanyIndicator   = regexp.MustCompile(`(?i)(?:\b(?:inc|llc|ltd|corp|corporation|company|co|technologies|solutions|systems|labs|group|university|agency|gmbh)\b|\s+at\s+|\s+@\s+|\s+\|\s+)`)
)

const (
	monthPart = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`
	datePart  = `(?:` + monthPart + `\s+\d{4}|\d{1,2}/\d{4}|\d{4})`
	roleNouns = `Engineer|Developer|Manager|Designer|Analyst|Scientist|Consultant|Architect|Director|Intern|Specialist|Administrator|Coordinator|Lead|Officer|Associate|Programmer|Technician`
)

// TitleCaseWords matches short header-like lines such as "Work Experience" or "TECHNICAL SKILLS".
var TitleCaseWords = regexp.MustCompile(`^[A-Z][A-Za-z&/]*(?:\s+(?:[A-Z][A-Za-z&/]*|&|and|of))*$`)

// BulletGlyphs are the leading characters that mark an explicit bullet line.
const BulletGlyphs = "•·*-+"

// SkillSeparators split a skills block into individual fragments.
var SkillSeparators = regexp.MustCompile(`[,;\n•·*]`)

var technologyTerms = []string{
	"python", "java", "javascript", "typescript", "golang", "go", "rust", "c++", "c#", "ruby",
	"php", "swift", "kotlin", "scala", "sql", "nosql", "html", "css", "react", "angular", "vue",
	"node.js", "express", "django", "flask", "spring", "rails", ".net", "graphql", "rest",
	"docker", "kubernetes", "terraform", "ansible", "aws", "azure", "gcp", "linux", "git",
	"jenkins", "ci/cd", "postgresql", "mysql", "mongodb", "redis", "kafka", "elasticsearch",
	"spark", "hadoop", "tensorflow", "pytorch", "machine learning", "microservices", "api",
}

var softSkillTerms = []string{
	"leadership", "communication", "teamwork", "collaboration", "problem solving",
	"problem-solving", "mentoring", "mentorship", "time management", "critical thinking",
	"adaptability", "creativity", "attention to detail", "project management", "agile",
	"scrum", "stakeholder management",
}

// ActionTag pairs a verb found in an experience bullet with the tag it implies
type ActionTag struct {
	Verb string
	Tag  string
}

var actionTags = []ActionTag{
	{Verb: "led", Tag: "leadership"},
	{Verb: "developed", Tag: "development"},
	{Verb: "managed", Tag: "management"},
}

// TechnologyTerms returns a copy of the technology vocabulary.
func TechnologyTerms() []string {
	return append([]string(nil), technologyTerms...)
}

// SoftSkillTerms returns a copy of the soft-skill vocabulary.
func SoftSkillTerms() []string {
	return append([]string(nil), softSkillTerms...)
}

// ActionTags returns a copy of the experience bullet action verb table.
func ActionTags() []ActionTag {
	return append([]ActionTag(nil), actionTags...)
}

// MatchSectionHeader tests a trimmed line against the section header table.
func MatchSectionHeader(line string) (types.ChunkType, bool) {
	for _, hp := range sectionHeaderTable {
		if hp.re.MatchString(line) {
			return hp.chunkType, true
		}
	}
	return "", false
}

// StripBullet removes a leading bullet glyph. The second return value reports whether one was present.
func StripBullet(line string) (string, bool) {
	r, size := utf8.DecodeRuneInString(line)
	if size == 0 || !strings.ContainsRune(BulletGlyphs, r) {
		return line, false
	}
	return strings.TrimSpace(line[size:]), true
}
