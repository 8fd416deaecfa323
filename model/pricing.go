package model

import (
	"strings"

	"github.com/hupe1980/telcoagents/core"
)

// Pricing holds per-million-token dollar rates used to derive call cost from
// token usage.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// pricingTable maps model identifier prefixes to published rate cards.
// Dated snapshots (e.g. claude-3-5-sonnet-20241022) resolve via their family
// prefix. Rates are USD per one million tokens.
var pricingTable = map[string]Pricing{
	"gpt-4o-mini":       {InputPerMTok: 0.15, OutputPerMTok: 0.60},
	"gpt-4o":            {InputPerMTok: 2.50, OutputPerMTok: 10.00},
	"gpt-4.1-nano":      {InputPerMTok: 0.10, OutputPerMTok: 0.40},
	"gpt-4.1-mini":      {InputPerMTok: 0.40, OutputPerMTok: 1.60},
	"gpt-4.1":           {InputPerMTok: 2.00, OutputPerMTok: 8.00},
	"claude-3-5-haiku":  {InputPerMTok: 0.80, OutputPerMTok: 4.00},
	"claude-3-5-sonnet": {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"claude-3-7-sonnet": {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"claude-sonnet-4":   {InputPerMTok: 3.00, OutputPerMTok: 15.00},
	"claude-opus-4":     {InputPerMTok: 15.00, OutputPerMTok: 75.00},
}

// LookupPricing returns the rate card for a model identifier. Matching is by
// longest prefix so versioned identifiers resolve to their family.
func LookupPricing(model string) (Pricing, bool) {
	var (
		best    string
		pricing Pricing
		found   bool
	)
	for prefix, p := range pricingTable {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best = prefix
			pricing = p
			found = true
		}
	}
	return pricing, found
}

// CostOf computes the dollar cost of one call from its token usage, or nil
// when the model has no known rate card or usage was not reported.
func CostOf(model string, usage *core.TokenUsage) *float64 {
	if usage == nil {
		return nil
	}
	pricing, ok := LookupPricing(model)
	if !ok {
		return nil
	}
	cost := float64(usage.PromptTokens)*pricing.InputPerMTok/1e6 +
		float64(usage.CompletionTokens)*pricing.OutputPerMTok/1e6
	return &cost
}
