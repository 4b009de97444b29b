package extract

import (
	"fmt"
	"strings"
)

// maxPromptRunes bounds the article text sent to the model
const maxPromptRunes = 12000

const promptTemplate = `Identify the geographic entities in the news text below.

Return ONLY a JSON object with exactly two arrays:
{
  "regions": [
    {"name": "...", "role": "...", "confidence": 0.0, "evidence": "...", "admin_level": 0}
  ],
  "places": [
    {"name": "...", "role": "...", "confidence": 0.0, "evidence": "...", "country": "..."}
  ]
}

Rules:
- "regions" are countries (admin_level 0), states or provinces (1) and districts (2).
- "places" are cities, towns, landmarks and other point locations.
- "role" is one of: event_location, direct_participant, geopolitical_stakeholder.
- "confidence" is a number between 0 and 1.
- "evidence" must be copied word for word from the text.
- "country" is the country the place belongs to, when you know it.
- Skip locations that only appear in datelines, news agency credits or
  source attributions ("reported from", "according to").
- Skip countries that only hosted, mediated or witnessed an event unless
  they are also a party to it.
- Do not invent entities that are not in the text.

Text:
"""
%s
"""`

// BuildPrompt returns the extraction prompt for text
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, truncateRunes(strings.TrimSpace(text), maxPromptRunes))
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
