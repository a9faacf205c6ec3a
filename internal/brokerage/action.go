package brokerage

import "strings"

// Activity types recognized by the normalizer. These match the canonical
// transaction types consumed by the ledger.
const (
	ActionBuy        = "BUY"
	ActionSell       = "SELL"
	ActionDividend   = "DIVIDEND"
	ActionDeposit    = "DEPOSIT"
	ActionWithdrawal = "WITHDRAWAL"
	ActionAssignment = "ASSIGNMENT"
	ActionExpiry     = "EXPIRY"
	ActionFee        = "FEE"
)

// actionRule maps a text predicate to a resulting activity type. Rules are
// evaluated in priority order over the uppercased action+description text.
type actionRule struct {
	matches func(string) bool
	kind    string
}

func containsAny(keywords ...string) func(string) bool {
	return func(s string) bool {
		for _, kw := range keywords {
			if strings.Contains(s, kw) {
				return true
			}
		}
		return false
	}
}

// actionRules is evaluated top to bottom; the first match wins. Rows matching
// no rule fall through to FEE, which is the documented lenient default for
// unrecognized brokerage actions.
var actionRules = []actionRule{
	{containsAny("BUY"), ActionBuy},
	{containsAny("SELL"), ActionSell},
	{containsAny("DIVIDEND", "QUAL DIV"), ActionDividend},
	{containsAny("DEPOSIT"), ActionDeposit},
	{containsAny("WITHDRAWAL"), ActionWithdrawal},
	{containsAny("ASSIGN"), ActionAssignment},
	{containsAny("EXPIR"), ActionExpiry},
	{containsAny("FEE", "COMM"), ActionFee},
}

// ClassifyAction maps a raw action cell plus description to an activity type.
// The second return value reports whether a rule matched or the FEE default
// was applied.
func ClassifyAction(rawAction, description string) (string, bool) {
	text := strings.ToUpper(rawAction + " " + description)
	for _, rule := range actionRules {
		if rule.matches(text) {
			return rule.kind, true
		}
	}
	return ActionFee, false
}
