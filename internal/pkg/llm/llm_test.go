package llm

import (
	"errors"
	"testing"

	openaiclient "github.com/openai/openai-go/v2"
	"github.com/stretchr/testify/assert"
)

func TestClassifyQuota(t *testing.T) {
	apiErr := &openaiclient.Error{StatusCode: 429}
	got := classify(apiErr)

	assert.Equal(t, KindQuotaExceeded, got.Kind)
	assert.True(t, errors.Is(got, apiErr))
}

func TestClassifyDefaultsToUnavailable(t *testing.T) {
	for i, err := range []error{
		&openaiclient.Error{StatusCode: 500},
		&openaiclient.Error{StatusCode: 401},
		errors.New("connection refused"),
	} {
		assert.Equal(t, KindServiceUnavailable, classify(err).Kind, "case %d", i)
	}
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Kind: KindMalformedResponse, Err: errors.New("no choices")}
	assert.Contains(t, e.Error(), "malformed_response")
	assert.Contains(t, e.Error(), "no choices")

	bare := &Error{Kind: KindQuotaExceeded}
	assert.Equal(t, "quota_exceeded", bare.Error())
}

func TestProviderSelection(t *testing.T) {
	assert.True(t, isAnthropic("anthropic"))
	assert.True(t, isAnthropic(" Anthropic "))
	assert.False(t, isAnthropic(""))
	assert.False(t, isAnthropic("openai"))
}
