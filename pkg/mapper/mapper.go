// Package mapper converts controller snapshots and domain values into view DTOs.
package mapper

import (
	"time"

	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/notification"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/dto"
	"github.com/amirasaad/compago/pkg/money"
)

// MapAmountToDTO renders a money value.
func MapAmountToDTO(m money.Money) dto.AmountRead {
	return dto.AmountRead{
		Value:    m.Amount().StringFixed(m.Currency().Decimals),
		Currency: m.CurrencyCode().String(),
		Display:  m.Format(),
	}
}

// MapAccountToDTO maps a domain Account.
func MapAccountToDTO(a account.Account) dto.AccountRead {
	return dto.AccountRead{
		ID:      a.ID,
		Label:   a.Label,
		Icon:    a.Icon,
		Balance: MapAmountToDTO(a.Balance),
	}
}

// MapTransactionToDTO maps a domain Transaction.
func MapTransactionToDTO(tx account.Transaction) dto.TransactionRead {
	return dto.TransactionRead{
		ID:           tx.ID,
		Direction:    string(tx.Direction),
		Label:        tx.Direction.Label(),
		Amount:       MapAmountToDTO(tx.Amount),
		Counterparty: tx.Counterparty,
		Channel:      string(tx.Channel),
		Date:         tx.OccurredOn.Format(time.DateOnly),
		Account:      tx.Account,
		Memo:         tx.Memo,
	}
}

// MapTransactionsToDTO keeps the order of txs.
func MapTransactionsToDTO(txs []account.Transaction) []dto.TransactionRead {
	out := make([]dto.TransactionRead, 0, len(txs))
	for _, tx := range txs {
		out = append(out, MapTransactionToDTO(tx))
	}
	return out
}

// MapTransactionListToDTO pairs a filtered log with its filter.
func MapTransactionListToDTO(filter account.Filter, txs []account.Transaction) dto.TransactionList {
	if filter == "" {
		filter = account.FilterAll
	}
	return dto.TransactionList{Filter: string(filter), Transactions: MapTransactionsToDTO(txs)}
}

// MapNotificationToDTO returns nil when n is nil.
func MapNotificationToDTO(n *notification.Notification) *dto.NotificationRead {
	if n == nil {
		return nil
	}
	return &dto.NotificationRead{
		ID:        n.ID,
		Message:   n.Message,
		Severity:  string(n.Severity),
		CreatedAt: n.CreatedAt,
		ExpiresAt: n.ExpiresAt,
	}
}

// MapDraftToDTO maps the send form.
func MapDraftToDTO(d payment.Draft) dto.DraftRead {
	return dto.DraftRead{
		Phone:           d.Phone,
		LegalID:         d.LegalID,
		Bank:            d.Bank,
		Amount:          d.AmountText,
		Memo:            d.Memo,
		Channel:         string(d.Channel),
		SelectedContact: d.SelectedContact,
	}
}

// MapSummaryToDTO returns nil when s is nil.
func MapSummaryToDTO(s *payment.Summary) *dto.SummaryRead {
	if s == nil {
		return nil
	}
	return &dto.SummaryRead{
		Amount:       MapAmountToDTO(s.Amount),
		Counterparty: s.Counterparty,
		Bank:         s.Bank,
		Channel:      string(s.Channel),
		Memo:         s.Memo,
	}
}

// MapChargeToDTO returns nil when c is nil.
func MapChargeToDTO(c *payment.Charge) *dto.ChargeRead {
	if c == nil {
		return nil
	}
	return &dto.ChargeRead{
		Amount:      MapAmountToDTO(c.Amount),
		Concept:     c.Concept,
		QRPayload:   c.QRPayload,
		ActivatedAt: c.ActivatedAt,
	}
}

// MapSnapshotToDTO maps the full controller state.
func MapSnapshotToDTO(s app.Snapshot) dto.StateRead {
	accounts := make([]dto.AccountRead, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		accounts = append(accounts, MapAccountToDTO(a))
	}
	contacts := make([]dto.ContactRead, 0, len(s.Contacts))
	for _, c := range s.Contacts {
		contacts = append(contacts, dto.ContactRead{
			Name:    c.Name,
			Phone:   c.Phone,
			LegalID: c.LegalID,
			Bank:    c.Bank,
		})
	}
	return dto.StateRead{
		Authenticated:      s.Authenticated,
		Screen:             s.Screen.String(),
		Accounts:           accounts,
		TotalBalance:       MapAmountToDTO(s.TotalBalance),
		Recent:             MapTransactionsToDTO(s.Recent),
		History:            MapTransactionListToDTO(s.HistoryFilter, s.History),
		Notification:       MapNotificationToDTO(s.Notification),
		Draft:              MapDraftToDTO(s.Draft),
		Confirmation:       MapSummaryToDTO(s.Confirmation),
		Charge:             MapChargeToDTO(s.Charge),
		Contacts:           contacts,
		Profile:            s.Profile,
		PendingSettlements: s.PendingSettlements,
	}
}
