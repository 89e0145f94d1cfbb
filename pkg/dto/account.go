package dto

// AmountRead is a money value as the view renders it.
type AmountRead struct {
	Value    string `json:"value"`    // fixed decimals, e.g. "525.75"
	Currency string `json:"currency"` // ISO code
	Display  string `json:"display"`  // localized, e.g. "Bs. 525,75"
}

// AccountRead is a linked bank balance.
type AccountRead struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Icon    string     `json:"icon"`
	Balance AmountRead `json:"balance"`
}

// ContactRead is a saved payee.
type ContactRead struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	LegalID string `json:"legalId,omitempty"`
	Bank    string `json:"bank"`
}
