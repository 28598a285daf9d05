package magtifun

const (
	StatusSuccess     = "success"
	statusNotLoggedIn = "not_logged_in"
)

// StatusTable maps the status codes returned by the send script to messages
// shown to users. It is immutable once built.
type StatusTable struct {
	messages map[string]string
	fallback string
}

// NewStatusTable copies messages, fallback is used for codes not in messages.
func NewStatusTable(messages map[string]string, fallback string) *StatusTable {
	copied := make(map[string]string, len(messages))
	for code, message := range messages {
		copied[code] = message
	}
	return &StatusTable{messages: copied, fallback: fallback}
}

func DefaultStatusTable() *StatusTable {
	return NewStatusTable(map[string]string{
		StatusSuccess:       "Successfully sent",
		"not_enough_credit": "Not enough credits",
		"not_enough_money":  "Not enough money",
		"max_messages":      "Maximum 3 Messages",
		"incorrect_mobile":  "Incorrect mobile number",
	}, "Unknown error")
}

// Lookup returns the message for code, known is false when the fallback
// message was used.
func (t *StatusTable) Lookup(code string) (message string, known bool) {
	message, known = t.messages[code]
	if !known {
		return t.fallback, false
	}
	return message, true
}
