package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/amirasaad/compago/pkg/dto"
	"github.com/fatih/color"
)

var (
	titleColor   = color.New(color.FgHiWhite, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
	amountColor  = color.New(color.FgHiGreen)
	debitColor   = color.New(color.FgRed)
	creditColor  = color.New(color.FgGreen)
	severityTone = map[string]*color.Color{
		"info":    color.New(color.FgCyan),
		"success": color.New(color.FgGreen, color.Bold),
		"error":   color.New(color.FgRed, color.Bold),
	}
)

func renderState(w io.Writer, st dto.StateRead) {
	renderNotification(w, st.Notification)
	_, _ = titleColor.Fprintf(w, "== %s ==\n", screenTitle(st.Screen))
	switch st.Screen {
	case "login":
		_, _ = fmt.Fprintln(w, "Ingrese su PIN con: login [pin]")
	case "dashboard":
		renderDashboard(w, st)
	case "sendPayment":
		renderSend(w, st)
	case "receivePayment":
		renderReceive(w, st)
	case "history":
		renderHistory(w, st.History)
	case "profile":
		renderProfile(w, st)
	}
	if st.PendingSettlements > 0 {
		_, _ = mutedColor.Fprintf(w, "(%d pago(s) en proceso)\n", st.PendingSettlements)
	}
}

func renderNotification(w io.Writer, n *dto.NotificationRead) {
	if n == nil {
		return
	}
	c, ok := severityTone[n.Severity]
	if !ok {
		c = severityTone["info"]
	}
	_, _ = c.Fprintf(w, "» %s\n", n.Message)
}

func screenTitle(screen string) string {
	switch screen {
	case "login":
		return "COMPAGO"
	case "dashboard":
		return "Inicio"
	case "sendPayment":
		return "Enviar pago"
	case "receivePayment":
		return "Recibir pago"
	case "history":
		return "Historial"
	case "profile":
		return "Perfil"
	default:
		return screen
	}
}

func renderDashboard(w io.Writer, st dto.StateRead) {
	_, _ = fmt.Fprintf(w, "Hola, %s\n", st.Profile.Name)
	_, _ = fmt.Fprint(w, "Saldo total: ")
	_, _ = amountColor.Fprintln(w, st.TotalBalance.Display)
	for _, a := range st.Accounts {
		_, _ = fmt.Fprintf(w, "  %s %-12s %s\n", a.Icon, a.Label, a.Balance.Display)
	}
	_, _ = titleColor.Fprintln(w, "Movimientos recientes")
	renderTransactions(w, st.Recent)
}

func renderSend(w io.Writer, st dto.StateRead) {
	d := st.Draft
	_, _ = fmt.Fprintf(w, "Canal: %s", d.Channel)
	if d.SelectedContact != "" {
		_, _ = fmt.Fprintf(w, "  Contacto: %s", d.SelectedContact)
	}
	_, _ = fmt.Fprintln(w)
	field := func(label, value string) {
		if value == "" {
			value = mutedColor.Sprint("-")
		}
		_, _ = fmt.Fprintf(w, "  %-10s %s\n", label, value)
	}
	field("Teléfono", d.Phone)
	field("Cédula", d.LegalID)
	field("Banco", d.Bank)
	field("Monto", d.Amount)
	field("Concepto", d.Memo)
	if d.Channel == "Contacto" && len(st.Contacts) > 0 {
		names := make([]string, 0, len(st.Contacts))
		for _, c := range st.Contacts {
			names = append(names, c.Name)
		}
		_, _ = mutedColor.Fprintf(w, "Contactos: %s\n", strings.Join(names, ", "))
	}
	if c := st.Confirmation; c != nil {
		_, _ = titleColor.Fprintln(w, "Confirmar pago")
		_, _ = fmt.Fprintf(w, "  %s a %s (%s) vía %s\n", c.Amount.Display, c.Counterparty, c.Bank, c.Channel)
		if c.Memo != "" {
			_, _ = fmt.Fprintf(w, "  Concepto: %s\n", c.Memo)
		}
		_, _ = mutedColor.Fprintln(w, "confirm | cancel")
	}
}

func renderReceive(w io.Writer, st dto.StateRead) {
	c := st.Charge
	if c == nil {
		_, _ = fmt.Fprintln(w, "Genere un cobro con: charge <monto> [concepto]")
		return
	}
	_, _ = fmt.Fprint(w, "Cobrando ")
	_, _ = amountColor.Fprintln(w, c.Amount.Display)
	if c.Concept != "" {
		_, _ = fmt.Fprintf(w, "Concepto: %s\n", c.Concept)
	}
	_, _ = mutedColor.Fprintf(w, "QR: %s\n", c.QRPayload)
	_, _ = mutedColor.Fprintln(w, "simulate | stop")
}

func renderHistory(w io.Writer, h dto.TransactionList) {
	_, _ = mutedColor.Fprintf(w, "Filtro: %s\n", h.Filter)
	renderTransactions(w, h.Transactions)
}

func renderTransactions(w io.Writer, txs []dto.TransactionRead) {
	if len(txs) == 0 {
		_, _ = mutedColor.Fprintln(w, "  Sin movimientos")
		return
	}
	for _, tx := range txs {
		sign, c := "-", debitColor
		if tx.Direction == "inbound" {
			sign, c = "+", creditColor
		}
		_, _ = fmt.Fprintf(w, "  %s %-10s %-28s ", tx.Date, tx.Label, tx.Counterparty)
		_, _ = c.Fprintf(w, "%s%s\n", sign, tx.Amount.Display)
	}
}

func renderProfile(w io.Writer, st dto.StateRead) {
	p := st.Profile
	_, _ = titleColor.Fprintf(w, "[%s] %s\n", p.Initials(), p.Name)
	_, _ = fmt.Fprintf(w, "  Teléfono %s\n  Cédula   %s\n", p.Phone, p.LegalID)
}
