package llm

import "strings"

// Pricing is the USD price per million tokens.
type Pricing struct {
	PromptPerMillion     float64
	CompletionPerMillion float64
}

// priceTable covers the hosted models the tracker has been run against.
// Local models are free and fall through to the unknown-model case.
var priceTable = map[string]Pricing{
	"gpt-4o":           {PromptPerMillion: 2.50, CompletionPerMillion: 10.00},
	"gpt-4o-mini":      {PromptPerMillion: 0.15, CompletionPerMillion: 0.60},
	"gpt-4-turbo":      {PromptPerMillion: 10.00, CompletionPerMillion: 30.00},
	"gpt-4":            {PromptPerMillion: 30.00, CompletionPerMillion: 60.00},
	"gpt-3.5-turbo":    {PromptPerMillion: 0.50, CompletionPerMillion: 1.50},
	"gemini-1.5-flash": {PromptPerMillion: 0.075, CompletionPerMillion: 0.30},
	"gemini-1.5-pro":   {PromptPerMillion: 1.25, CompletionPerMillion: 5.00},
	"gemini-2.0-flash": {PromptPerMillion: 0.10, CompletionPerMillion: 0.40},
	"gemini-2.5-flash": {PromptPerMillion: 0.30, CompletionPerMillion: 2.50},
	"gemini-2.5-pro":   {PromptPerMillion: 1.25, CompletionPerMillion: 10.00},
}

// LookupPricing resolves model by exact id, then by the longest known prefix
// (dated snapshots such as "gpt-4o-2024-08-06" price as their family).
func LookupPricing(model string) (Pricing, bool) {
	model = strings.TrimPrefix(strings.ToLower(model), "models/")
	if p, ok := priceTable[model]; ok {
		return p, true
	}
	best := ""
	for name := range priceTable {
		if strings.HasPrefix(model, name) && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return Pricing{}, false
	}
	return priceTable[best], true
}

// Cost returns the USD cost of usage on model. Unknown models cost 0.
func Cost(usage Usage, model string) float64 {
	p, ok := LookupPricing(model)
	if !ok {
		return 0
	}
	return float64(usage.PromptTokens)*p.PromptPerMillion/1e6 +
		float64(usage.CompletionTokens)*p.CompletionPerMillion/1e6
}
