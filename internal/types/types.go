package types

// Subscriber is one row of the subscription table: a recipient address
// and the ticker symbols they want covered in their report.
type Subscriber struct {
	Email     string   `json:"email" dynamodbav:"email"`
	Symbols   []string `json:"symbols" dynamodbav:"symbols"`
	Timestamp string   `json:"timestamp" dynamodbav:"timestamp"`
}

// Quote is a point-in-time price snapshot for one symbol.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// Summary is the model's narrative for one symbol. The BUY/SELL/HOLD
// call is embedded in the free text, not a structured field.
type Summary struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

// ReportSection holds everything needed to render one symbol's fragment
// of a subscriber's email.
type ReportSection struct {
	Symbol    string   `json:"symbol"`
	Quote     Quote    `json:"quote"`
	Headlines []string `json:"headlines"`
	Summary   Summary  `json:"summary"`
}

// RunStats is the coarse result of one pipeline run. Per-symbol and
// per-subscriber failures are logged, never surfaced here beyond counts.
type RunStats struct {
	Subscribers      int `json:"subscribers"`
	EmailsSent       int `json:"emails_sent"`
	Skipped          int `json:"skipped"`
	SymbolFailures   int `json:"symbol_failures"`
	DeliveryFailures int `json:"delivery_failures"`
}
