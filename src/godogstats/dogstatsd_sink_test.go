package godogstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeparateExtraTags(t *testing.T) {
	tests := []struct {
		name         string
		givenMetric  string
		expectOutput string
		expectTags   []string
	}{
		{
			name:         "no extra tags",
			givenMetric:  "entropyd.service.policy.session_token.hits",
			expectOutput: "entropyd.service.policy.session_token.hits",
			expectTags:   nil,
		},
		{
			name:         "one extra tags",
			givenMetric:  "entropyd.service.policy.session_token.hits.__COMMIT=12345",
			expectOutput: "entropyd.service.policy.session_token.hits",
			expectTags:   []string{"COMMIT:12345"},
		},
		{
			name:         "two extra tags",
			givenMetric:  "entropyd.service.policy.session_token.hits.__COMMIT=12345.__DEPLOY=6890",
			expectOutput: "entropyd.service.policy.session_token.hits",
			expectTags:   []string{"COMMIT:12345", "DEPLOY:6890"},
		},
		{
			name:         "invalid extra tag no value",
			givenMetric:  "entropyd.service.policy.session_token.hits.__COMMIT",
			expectOutput: "entropyd.service.policy.session_token.hits",
			expectTags:   []string{},
		},
	}

	for _, tt := range tests {
		actualName, actualTags := separateTags(tt.givenMetric)

		assert.Equal(t, tt.expectOutput, actualName)
		assert.Equal(t, tt.expectTags, actualTags)
	}
}
