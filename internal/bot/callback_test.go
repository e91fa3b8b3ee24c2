package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data string
		want Intent
	}{
		{"category_Искусство", Intent{Kind: IntentShowCategory, Payload: "Искусство"}},
		{"interest_Живопись", Intent{Kind: IntentSelectInterest, Payload: "Живопись"}},
		{"unselect_Живопись", Intent{Kind: IntentUnselectInterest, Payload: "Живопись"}},
		{"remove_Архитектура", Intent{Kind: IntentRemoveInterest, Payload: "Архитектура"}},
		{"back_to_categories", Intent{Kind: IntentBackToCategories}},
		{"main_menu", Intent{Kind: IntentMainMenu}},
		{"cancel_remove", Intent{Kind: IntentCancelRemove}},
		{"interests_done", Intent{Kind: IntentDone}},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, ok := ParseCallback(tt.data)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCallbackRejectsUnknownCodes(t *testing.T) {
	for _, data := range []string{
		"",
		"garbage",
		"category_",
		"interest_",
		"unselect_",
		"remove_",
		"categoryИскусство",
		"interests_done_extra",
	} {
		t.Run(data, func(t *testing.T) {
			_, ok := ParseCallback(data)
			assert.False(t, ok)
		})
	}
}

// cancel_remove must never be mistaken for a remove_ payload.
func TestParseCallbackCancelRemoveIsNotRemove(t *testing.T) {
	got, ok := ParseCallback("cancel_remove")
	assert.True(t, ok)
	assert.Equal(t, IntentCancelRemove, got.Kind)
}
