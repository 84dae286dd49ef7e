package model

// Salary is the parsed compensation range of a posting. Every field is nil when
// the source text carried no number.
type Salary struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency *string  `json:"currency"`
	Period   *string  `json:"period"`
}

// Job is a posting in the unified schema, plus the metadata the cleaning
// pipeline attaches.
type Job struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Source string `json:"source"`

	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`

	Salary Salary `json:"salary"`

	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	Benefits        []string `json:"benefits"`
	JobType         *string  `json:"jobType"`
	ExperienceLevel *string  `json:"experienceLevel"`

	// PostedDate is a timestamp string; empty means unknown.
	PostedDate     string   `json:"postedDate"`
	ApplicantCount *int     `json:"applicantCount"`
	CompanyLogo    *string  `json:"companyLogo"`
	CompanyRating  *float64 `json:"companyRating"`

	ScrapedAt string `json:"_scrapedAt"`
	Site      string `json:"_site"`

	Fingerprint string   `json:"_fingerprint,omitempty"`
	IsDuplicate bool     `json:"_isDuplicate"`
	DuplicateOf *string  `json:"_duplicateOf"`
	Sources     []string `json:"sources,omitempty"`
	IsExpired   bool     `json:"_isExpired"`
	AgeInDays   *int     `json:"_ageInDays"`
}

// Clone returns a copy of the job that shares no slices or pointers with j.
func (j Job) Clone() Job {
	c := j
	c.Requirements = cloneStrings(j.Requirements)
	c.Benefits = cloneStrings(j.Benefits)
	c.Sources = cloneStrings(j.Sources)
	c.Salary = Salary{
		Min:      clonePtr(j.Salary.Min),
		Max:      clonePtr(j.Salary.Max),
		Currency: clonePtr(j.Salary.Currency),
		Period:   clonePtr(j.Salary.Period),
	}
	c.JobType = clonePtr(j.JobType)
	c.ExperienceLevel = clonePtr(j.ExperienceLevel)
	c.ApplicantCount = clonePtr(j.ApplicantCount)
	c.CompanyLogo = clonePtr(j.CompanyLogo)
	c.CompanyRating = clonePtr(j.CompanyRating)
	c.DuplicateOf = clonePtr(j.DuplicateOf)
	c.AgeInDays = clonePtr(j.AgeInDays)
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
