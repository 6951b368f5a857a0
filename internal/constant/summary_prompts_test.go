package constant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSoapPrompt(t *testing.T) {
	prompt := BuildSoapPrompt("patient complains of headache")

	for _, marker := range SoapSectionMarkers {
		assert.Contains(t, prompt, marker)
	}
	assert.Contains(t, prompt, "SNOMED-CT")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "patient complains of headache"),
		"transcript goes at the end of the prompt")
}

func TestBuildStylePrompt(t *testing.T) {
	transcript := "doctor and patient discuss medication"

	prompts := map[string]string{}
	for _, style := range SummaryStyles {
		p := BuildStylePrompt(style, transcript)
		assert.Contains(t, p, transcript)
		prompts[style] = p
	}

	// Each style carries its own instruction
	assert.NotEqual(t, prompts[StyleSimple], prompts[StyleDetailed])
	assert.NotEqual(t, prompts[StyleDetailed], prompts[StyleTechnical])

	// Unknown styles degrade to the simple instruction
	assert.Equal(t, prompts[StyleSimple], BuildStylePrompt("bogus", transcript))
}
