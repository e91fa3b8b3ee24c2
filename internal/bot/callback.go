package bot

import "strings"

// Callback codes are the wire contract with the inline keyboards; the
// dialog dispatches purely on these prefixes.
const (
	callbackCategoryPrefix   = "category_"
	callbackInterestPrefix   = "interest_"
	callbackUnselectPrefix   = "unselect_"
	callbackRemovePrefix     = "remove_"
	callbackBackToCategories = "back_to_categories"
	callbackMainMenu         = "main_menu"
	callbackCancelRemove     = "cancel_remove"
	callbackInterestsDone    = "interests_done"
)

type IntentKind int

const (
	IntentShowCategory IntentKind = iota
	IntentSelectInterest
	IntentUnselectInterest
	IntentRemoveInterest
	IntentBackToCategories
	IntentMainMenu
	IntentCancelRemove
	IntentDone
)

// Intent is a parsed callback code. Payload carries the category or
// interest label for the prefixed codes.
type Intent struct {
	Kind    IntentKind
	Payload string
}

// ParseCallback turns an opaque callback code into a structured intent.
// Unrecognized codes are rejected, not guessed at.
func ParseCallback(data string) (Intent, bool) {
	switch data {
	case callbackBackToCategories:
		return Intent{Kind: IntentBackToCategories}, true
	case callbackMainMenu:
		return Intent{Kind: IntentMainMenu}, true
	case callbackCancelRemove:
		return Intent{Kind: IntentCancelRemove}, true
	case callbackInterestsDone:
		return Intent{Kind: IntentDone}, true
	}

	for prefix, kind := range map[string]IntentKind{
		callbackCategoryPrefix: IntentShowCategory,
		callbackInterestPrefix: IntentSelectInterest,
		callbackUnselectPrefix: IntentUnselectInterest,
		callbackRemovePrefix:   IntentRemoveInterest,
	} {
		if payload, ok := strings.CutPrefix(data, prefix); ok && payload != "" {
			return Intent{Kind: kind, Payload: payload}, true
		}
	}

	return Intent{}, false
}
