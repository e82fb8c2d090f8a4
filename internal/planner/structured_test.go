package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demo struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func TestExtractJSON_PlainObject(t *testing.T) {
	got, err := ExtractJSON[demo](`{"date":"2025-06-01","count":3}`, nil)
	require.NoError(t, err)
	assert.Equal(t, demo{Date: "2025-06-01", Count: 3}, got)
}

func TestExtractJSON_SurroundedByProse(t *testing.T) {
	raw := "Sure! Here you go:\n{\"date\":\"2025-06-01\",\"count\":3}\nAnything else?"
	got, err := ExtractJSON[demo](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Count)
}

func TestExtractJSON_CodeFence(t *testing.T) {
	raw := "```json\n{\"date\":\"2025-06-01\",\"count\":1}\n```"
	got, err := ExtractJSON[demo](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
}

func TestExtractJSON_NestedBracesInStrings(t *testing.T) {
	raw := `{"date":"2025-06-01","count":2,"note":"braces {inside} a string"}`
	got, err := ExtractJSON[demo](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}

func TestExtractJSON_NoObject(t *testing.T) {
	_, err := ExtractJSON[demo]("no structured data here", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidatorRejects(t *testing.T) {
	_, err := ExtractJSON(`{"date":"","count":0}`, func(d demo) error {
		if d.Date == "" {
			return assert.AnError
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestValidatePlanResponse(t *testing.T) {
	resp := validResponse()
	assert.NoError(t, ValidatePlanResponse(resp))

	missingTime := validResponse()
	missingTime.Items[1].ScheduledTime = "9:00"
	assert.Error(t, ValidatePlanResponse(missingTime))

	empty := PlanResponse{Date: "2025-06-01"}
	assert.Error(t, ValidatePlanResponse(empty))
}
