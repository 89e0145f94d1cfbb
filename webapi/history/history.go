// Package history exposes the transaction list.
package history

import (
	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/session"
	"github.com/amirasaad/compago/pkg/mapper"
	"github.com/amirasaad/compago/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(r fiber.Router, a *app.App) {
	r.Get("/transactions", Transactions(a))
	r.Put("/history/filter", SetFilter(a))
}

// Transactions lists ledger transactions newest first.
// @Summary List transactions
// @Tags history
// @Produce json
// @Param direction query string false "all, inbound or outbound"
// @Success 200 {object} common.Response{data=dto.TransactionList}
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /transactions [get]
func Transactions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := account.ParseFilter(c.Query("direction"))
		if err != nil {
			return common.WriteError(c, err)
		}
		snap, err := a.Snapshot(c.UserContext())
		if err != nil {
			return common.WriteError(c, err)
		}
		if !snap.Authenticated {
			return common.WriteError(c, session.ErrNotAuthenticated)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched",
			mapper.MapTransactionListToDTO(filter, filter.Apply(snap.Transactions)))
	}
}

// SetFilter changes the history screen filter.
// @Summary Filter history
// @Tags history
// @Accept json
// @Produce json
// @Param request body FilterInput true "Filter"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /history/filter [put]
func SetFilter(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[FilterInput](c)
		if input == nil {
			return err
		}
		filter, err := account.ParseFilter(input.Filter)
		if err != nil {
			return common.WriteError(c, err)
		}
		if err := a.SetHistoryFilter(c.UserContext(), filter); err != nil {
			return common.WriteError(c, err)
		}
		return common.StateJSON(c, a, "Filter applied")
	}
}
