package dto

// TransactionRead is one entry of the movement log.
type TransactionRead struct {
	ID           string     `json:"id"`
	Direction    string     `json:"direction"` // outbound | inbound
	Label        string     `json:"label"`     // Envío | Recepción
	Amount       AmountRead `json:"amount"`
	Counterparty string     `json:"counterparty"`
	Channel      string     `json:"channel"`
	Date         string     `json:"date"` // YYYY-MM-DD
	Account      string     `json:"account,omitempty"`
	Memo         string     `json:"memo,omitempty"`
}

// TransactionList is the response of the history endpoint.
type TransactionList struct {
	Filter       string            `json:"filter"`
	Transactions []TransactionRead `json:"transactions"`
}
