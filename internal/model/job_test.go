package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_Clone(t *testing.T) {
	low := 100000.0
	canonical := "1"
	job := Job{
		ID:          "2",
		Benefits:    []string{"dental"},
		Sources:     []string{"indeed"},
		Salary:      Salary{Min: &low},
		DuplicateOf: &canonical,
	}

	c := job.Clone()
	c.Benefits[0] = "vision"
	c.Sources = append(c.Sources, "linkedin")
	*c.Salary.Min = 1
	*c.DuplicateOf = "9"

	assert.Equal(t, []string{"dental"}, job.Benefits)
	assert.Equal(t, []string{"indeed"}, job.Sources)
	assert.Equal(t, 100000.0, *job.Salary.Min)
	assert.Equal(t, "1", *job.DuplicateOf)
}

func TestJob_JSONFieldNames(t *testing.T) {
	job := Job{ID: "1", Source: "linkedin", Site: "linkedin", Fingerprint: "abc", Sources: []string{"linkedin"}}

	data, err := json.Marshal(job)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"_scrapedAt", "_site", "_fingerprint", "_isDuplicate", "_duplicateOf", "sources", "_isExpired", "_ageInDays", "salary"} {
		assert.Contains(t, fields, key)
	}
	assert.Nil(t, fields["_duplicateOf"])
	assert.Nil(t, fields["_ageInDays"])
}
