package payment

import (
	"strings"

	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/money"
)

// Contact is a saved payee.
type Contact struct {
	Name    string
	Phone   string
	LegalID string
	Bank    string
}

// Preset is the data an NFC approach or a QR scan fills into the form.
type Preset struct {
	Phone   string
	LegalID string
	Bank    string
	Amount  string
	Memo    string
}

// Draft is the editable send form. AmountText is kept raw and may be empty or invalid
// until the user asks for confirmation.
type Draft struct {
	Phone           string `validate:"required"`
	LegalID         string
	Bank            string `validate:"required"`
	AmountText      string `validate:"required"`
	Memo            string
	Channel         account.Channel
	SelectedContact string
}

// DraftPatch carries the fields a view event wants to change. Nil means untouched.
type DraftPatch struct {
	Phone      *string `json:"phone,omitempty"`
	LegalID    *string `json:"legalId,omitempty"`
	Bank       *string `json:"bank,omitempty"`
	AmountText *string `json:"amount,omitempty"`
	Memo       *string `json:"memo,omitempty"`
}

// NewDraft returns an empty form on the given tab.
func NewDraft(channel account.Channel) Draft {
	if channel == "" {
		channel = account.ChannelNFC
	}
	return Draft{Channel: channel}
}

// Apply returns a copy with the patch applied.
func (d Draft) Apply(p DraftPatch) Draft {
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.LegalID != nil {
		d.LegalID = *p.LegalID
	}
	if p.Bank != nil {
		d.Bank = *p.Bank
	}
	if p.AmountText != nil {
		d.AmountText = *p.AmountText
	}
	if p.Memo != nil {
		d.Memo = *p.Memo
	}
	return d
}

// WithContact fills the payee fields from c and clears amount and memo.
func (d Draft) WithContact(c Contact) Draft {
	next := NewDraft(d.Channel)
	next.SelectedContact = c.Name
	next.Phone = c.Phone
	next.LegalID = c.LegalID
	next.Bank = c.Bank
	return next
}

// WithPreset replaces the form content with an auto-fill preset.
func (d Draft) WithPreset(p Preset) Draft {
	next := NewDraft(d.Channel)
	next.Phone = p.Phone
	next.LegalID = p.LegalID
	next.Bank = p.Bank
	next.AmountText = p.Amount
	next.Memo = p.Memo
	return next
}

// Intent validates the draft and converts it to an Intent.
func (d Draft) Intent(code money.Code) (Intent, error) {
	d.Phone = strings.TrimSpace(d.Phone)
	d.Bank = strings.TrimSpace(d.Bank)
	d.AmountText = strings.TrimSpace(d.AmountText)
	if err := validate.Struct(d); err != nil {
		return Intent{}, validationError(err, MsgMissingFields)
	}
	amount, err := parseAmount(d.AmountText, code)
	if err != nil {
		return Intent{}, err
	}
	if d.Channel == "" {
		d.Channel = account.ChannelNFC
	}
	if err := ValidateChannel(d.Channel); err != nil {
		return Intent{}, err
	}
	return Intent{
		Phone:   d.Phone,
		LegalID: strings.TrimSpace(d.LegalID),
		Bank:    d.Bank,
		Amount:  amount,
		Memo:    d.Memo,
		Channel: d.Channel,
	}, nil
}
