package llm

import "strings"

// ParseRecommendation extracts the BUY/SELL/HOLD call from a free-text
// summary. Models conventionally end the narrative with the token; the
// last occurrence wins. Unparseable text falls back to HOLD, since the
// narrative is advisory and the pipeline never gates on this value.
func ParseRecommendation(text string) string {
	upper := strings.ToUpper(text)
	best := "HOLD"
	bestIdx := -1
	for _, token := range []string{"BUY", "SELL", "HOLD"} {
		if idx := strings.LastIndex(upper, token); idx > bestIdx {
			best = token
			bestIdx = idx
		}
	}
	return best
}
