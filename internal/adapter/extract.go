package adapter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ratingPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Extract returns the JSON-LD postings of the page when it carries any, and the
// listing cards otherwise.
func (b *baseAdapter) Extract(doc *goquery.Document) []RawJob {
	if jobs := ExtractFromJSONLD(doc); len(jobs) > 0 {
		b.log.Debug().Int("count", len(jobs)).Msg("Extracted listings from JSON-LD")
		return jobs
	}
	jobs := b.ExtractFromDOM(doc)
	b.log.Debug().Int("count", len(jobs)).Msg("Extracted listings from DOM")
	return jobs
}

// ExtractFromDOM walks the listing cards in document order
func (b *baseAdapter) ExtractFromDOM(doc *goquery.Document) []RawJob {
	var jobs []RawJob
	doc.Find(b.config.Selectors.JobList).Each(func(_ int, card *goquery.Selection) {
		if raw, ok := b.processCard(card); ok {
			jobs = append(jobs, raw)
		}
	})
	return jobs
}

// processCard extracts a single listing card
func (b *baseAdapter) processCard(card *goquery.Selection) (RawJob, bool) {
	sel := b.config.Selectors

	title := firstText(card, sel.Title)
	if title == "" {
		return RawJob{}, false
	}

	var link string
	if sel.Link != "" {
		if href, exists := card.Find(sel.Link).First().Attr("href"); exists && strings.TrimSpace(href) != "" {
			link = b.ResolveURL(strings.TrimSpace(href))
		}
	}
	if sel.RequireLink && link == "" {
		return RawJob{}, false
	}

	raw := RawJob{
		Title:    title,
		Company:  firstText(card, sel.Company),
		Location: firstText(card, sel.Location),
		Salary:   firstText(card, sel.Salary),
		URL:      link,
	}

	if link != "" && b.config.IDExtractor != nil {
		raw.ID = b.config.IDExtractor(link)
	}
	if raw.ID == "" && sel.IDAttr != "" {
		raw.ID = strings.TrimSpace(card.AttrOr(sel.IDAttr, ""))
	}

	if sel.Rating != "" {
		if m := ratingPattern.FindString(firstText(card, sel.Rating)); m != "" {
			if rating, err := strconv.ParseFloat(m, 64); err == nil {
				raw.CompanyRating = &rating
			}
		}
	}

	return raw, true
}

func firstText(s *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(s.Find(selector).First().Text())
}

// ExtractFromJSONLD returns every schema.org JobPosting embedded in the page
func ExtractFromJSONLD(doc *goquery.Document) []RawJob {
	var jobs []RawJob
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return
		}
		for _, posting := range jobPostings(data) {
			jobs = append(jobs, rawFromJobPosting(posting))
		}
	})
	return jobs
}

func jobPostings(data any) []map[string]any {
	switch v := data.(type) {
	case []any:
		var out []map[string]any
		for _, item := range v {
			out = append(out, jobPostings(item)...)
		}
		return out
	case map[string]any:
		if hasType(v["@type"], "JobPosting") {
			return []map[string]any{v}
		}
		if graph, ok := v["@graph"]; ok {
			return jobPostings(graph)
		}
	}
	return nil
}

func hasType(v any, name string) bool {
	switch t := v.(type) {
	case string:
		return t == name
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == name {
				return true
			}
		}
	}
	return false
}

func rawFromJobPosting(p map[string]any) RawJob {
	raw := RawJob{
		ID:          identifier(p["identifier"]),
		URL:         str(p["url"]),
		Title:       str(p["title"]),
		Location:    jobLocation(p["jobLocation"]),
		PostedDate:  str(p["datePosted"]),
		Description: plainText(str(p["description"])),
		JobType:     first(p["employmentType"]),
		Salary:      salaryText(p["baseSalary"]),
	}

	switch org := p["hiringOrganization"].(type) {
	case map[string]any:
		raw.Company = str(org["name"])
		raw.CompanyLogo = str(org["logo"])
		if logo, ok := org["logo"].(map[string]any); ok {
			raw.CompanyLogo = str(logo["url"])
		}
	case string:
		raw.Company = strings.TrimSpace(org)
	}

	if raw.Location == "" && str(p["jobLocationType"]) == "TELECOMMUTE" {
		raw.Location = "Remote"
	}
	return raw
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func first(v any) string {
	if items, ok := v.([]any); ok {
		if len(items) == 0 {
			return ""
		}
		return str(items[0])
	}
	return str(v)
}

func identifier(v any) string {
	if m, ok := v.(map[string]any); ok {
		return str(m["value"])
	}
	return str(v)
}

func jobLocation(v any) string {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return ""
		}
		return jobLocation(t[0])
	case map[string]any:
		addr, ok := t["address"].(map[string]any)
		if !ok {
			return str(t["address"])
		}
		var parts []string
		for _, key := range []string{"addressLocality", "addressRegion"} {
			if s := str(addr[key]); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			if country, ok := addr["addressCountry"].(map[string]any); ok {
				return str(country["name"])
			}
			return str(addr["addressCountry"])
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// salaryText renders a MonetaryAmount the way listing cards print salaries
func salaryText(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return str(v)
	}
	value, ok := m["value"].(map[string]any)
	if !ok {
		if amount := str(m["value"]); amount != "" {
			return "$" + amount
		}
		return ""
	}

	unit := strings.ToLower(str(value["unitText"]))
	low, high := str(value["minValue"]), str(value["maxValue"])
	var text string
	switch {
	case low != "" && high != "":
		text = fmt.Sprintf("$%s - $%s", low, high)
	case low != "":
		text = "$" + low
	case str(value["value"]) != "":
		text = "$" + str(value["value"])
	default:
		return ""
	}
	if unit != "" {
		text += " per " + unit
	}
	return text
}

// plainText strips markup from JSON-LD descriptions
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
