package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"slices"
	"strings"

	"sjsage522/jobaggregator/internal/model"
)

var (
	// punctuation is anything that is neither a word character nor whitespace.
	// Whitespace includes Unicode separators so that NBSP behaves like a space.
	punctuation = regexp.MustCompile(`[^\w\s\v\p{Z}\x{FEFF}]`)
	whitespace  = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	workModes   = regexp.MustCompile(`\b(remote|hybrid|onsite)\b`)

	companySuffixes = []string{"inc", "llc", "ltd", "corp", "corporation", "company", "co"}
	suffixPatterns  = compileSuffixes(companySuffixes)
)

func compileSuffixes(suffixes []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(suffixes))
	for i, s := range suffixes {
		patterns[i] = regexp.MustCompile(`\b` + s + `\b$`)
	}
	return patterns
}

func normalizeText(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = punctuation.ReplaceAllString(s, "")
	return whitespace.ReplaceAllString(s, " ")
}

// NormalizeTitle lowercases, strips punctuation and collapses whitespace
func NormalizeTitle(title string) string {
	return normalizeText(title)
}

// NormalizeCompany normalizes like NormalizeTitle, then strips legal-entity
// suffixes. Each suffix is tried once, in list order, against the end of the name.
func NormalizeCompany(company string) string {
	normalized := normalizeText(company)
	for _, re := range suffixPatterns {
		normalized = strings.TrimSpace(re.ReplaceAllString(normalized, ""))
	}
	return normalized
}

// NormalizeLocation normalizes like NormalizeTitle, then removes the work-mode
// words remote, hybrid and onsite. Spacing left behind is not collapsed.
func NormalizeLocation(location string) string {
	return workModes.ReplaceAllString(normalizeText(location), "")
}

// Fingerprint is the hex SHA-256 of the normalized title, company and location
func Fingerprint(job model.Job) string {
	key := NormalizeTitle(job.Title) + "|" + NormalizeCompany(job.Company) + "|" + NormalizeLocation(job.Location)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// DetectDuplicates marks every job after the first with a given fingerprint as a
// duplicate of that first job, and merges its source into the first job's
// sources. Input order decides which job is canonical. Inputs are not modified.
func DetectDuplicates(jobs []model.Job) []model.Job {
	fingerprints := make([]string, len(jobs))
	canonical := make([]int, len(jobs))
	groups := make(map[string][]int)

	// Pass one: group indices by fingerprint in input order
	for i, job := range jobs {
		fp := Fingerprint(job)
		fingerprints[i] = fp
		groups[fp] = append(groups[fp], i)
		canonical[i] = groups[fp][0]
	}

	// Pass two: build output records
	out := make([]model.Job, len(jobs))
	for i, job := range jobs {
		c := job.Clone()
		c.Fingerprint = fingerprints[i]

		first := canonical[i]
		if first == i {
			var sources []string
			for _, member := range groups[fingerprints[i]] {
				if !slices.Contains(sources, jobs[member].Source) {
					sources = append(sources, jobs[member].Source)
				}
			}
			c.IsDuplicate = false
			c.DuplicateOf = nil
			c.Sources = sources
		} else {
			id := jobs[first].ID
			c.IsDuplicate = true
			c.DuplicateOf = &id
			c.Sources = []string{job.Source}
		}
		out[i] = c
	}
	return out
}

// RemoveDuplicates keeps the jobs not marked as duplicates, in order
func RemoveDuplicates(jobs []model.Job) []model.Job {
	var kept []model.Job
	for _, job := range jobs {
		if !job.IsDuplicate {
			kept = append(kept, job)
		}
	}
	return kept
}

// CountDuplicates returns the number of jobs marked as duplicates
func CountDuplicates(jobs []model.Job) int {
	n := 0
	for _, job := range jobs {
		if job.IsDuplicate {
			n++
		}
	}
	return n
}
