package llm

import (
	"fmt"
	"strconv"
	"strings"

	"stockpulse/internal/types"
)

// BuildPrompt renders the deterministic analysis prompt for one symbol.
// Same inputs always produce the same prompt text.
func BuildPrompt(symbol string, quote types.Quote, headlines []string) string {
	var b strings.Builder
	b.WriteString("You are a financial reasoning agent.\n\n")
	b.WriteString("Analyze the following stock and news:\n\n")
	fmt.Fprintf(&b, "SYMBOL: %s\n", symbol)
	fmt.Fprintf(&b, "PRICE: $%s\n", strconv.FormatFloat(quote.Price, 'f', -1, 64))
	fmt.Fprintf(&b, "VOLUME: %d\n\n", quote.Volume)
	b.WriteString("NEWS:\n")
	for _, h := range headlines {
		fmt.Fprintf(&b, "- %s\n", h)
	}
	b.WriteString("\nGive a short summary and then a BUY / SELL / HOLD recommendation.\n")
	return b.String()
}
