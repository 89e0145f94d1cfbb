// Package payment exposes the send and receive flows.
package payment

import (
	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/mapper"
	"github.com/amirasaad/compago/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(r fiber.Router, a *app.App) {
	send := r.Group("/send")
	send.Patch("/draft", UpdateDraft(a))
	send.Put("/channel", SelectChannel(a))
	send.Put("/contact", SelectContact(a))
	send.Post("/autofill", AutoFill(a))
	send.Post("/confirmation", RequestConfirmation(a))
	send.Delete("/confirmation", CancelConfirm(a))
	send.Post("/confirm", ConfirmSend(a))

	r.Post("/receive", ActivateReceive(a))
	r.Delete("/receive", CancelReceive(a))
	r.Post("/receive/simulate", SimulateIncoming(a))
}

// UpdateDraft patches the send form. Omitted fields are left untouched.
// @Summary Edit the send form
// @Tags send
// @Accept json
// @Produce json
// @Param request body payment.DraftPatch true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /send/draft [patch]
func UpdateDraft(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		patch, err := common.BindAndValidate[payment.DraftPatch](c)
		if patch == nil {
			return err
		}
		if err := a.UpdateDraft(c.UserContext(), *patch); err != nil {
			return common.WriteError(c, err)
		}
		return common.StateJSON(c, a, "Draft updated")
	}
}

// SelectChannel switches the form tab.
// @Summary Select a channel
// @Tags send
// @Accept json
// @Produce json
// @Param request body ChannelInput true "Channel"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /send/channel [put]
func SelectChannel(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ChannelInput](c)
		if input == nil {
			return err
		}
		channel, err := account.ParseChannel(input.Channel)
		if err != nil {
			return common.WriteError(c, err)
		}
		if err := a.SelectChannel(c.UserContext(), channel); err != nil {
			return common.WriteError(c, err)
		}
		return common.StateJSON(c, a, "Channel selected")
	}
}

// SelectContact fills the form from a saved contact.
// @Summary Select a contact
// @Tags send
// @Accept json
// @Produce json
// @Param request body ContactInput true "Contact name"
// @Success 200 {object} common.Response
// @Router /send/contact [put]
func SelectContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ContactInput](c)
		if input == nil {
			return err
		}
		if err := a.SelectContact(c.UserContext(), input.Name); err != nil {
			return common.WriteError(c, err)
		}
		return common.StateJSON(c, a, "Contact selected")
	}
}

// AutoFill applies the simulated NFC or QR capture.
// @Summary Simulate a tap or scan
// @Tags send
// @Accept json
// @Produce json
// @Param request body ChannelInput true "nfc or qr"
// @Success 200 {object} common.Response
// @Router /send/autofill [post]
func AutoFill(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ChannelInput](c)
		if input == nil {
			return err
		}
		channel, err := account.ParseChannel(input.Channel)
		if err != nil {
			return common.WriteError(c, err)
		}
		if err := a.AutoFill(c.UserContext(), channel); err != nil {
			return common.WriteError(c, err)
		}
		return common.StateJSON(c, a, "Form filled")
	}
}

// RequestConfirmation validates the form and returns the summary to confirm.
// @Summary Review the payment
// @Tags send
// @Produce json
// @Success 200 {object} common.Response{data=dto.SummaryRead}
// @Failure 400 {object} common.ProblemDetails
// @Router /send/confirmation [post]
func RequestConfirmation(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := a.RequestConfirmation(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Confirm payment", mapper.MapSummaryToDTO(&summary))
	}
}

// CancelConfirm drops the pending summary and keeps the form.
// @Summary Cancel confirmation
// @Tags send
// @Produce json
// @Success 200 {object} common.Response
// @Router /send/confirmation [delete]
func CancelConfirm(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.CancelConfirm(c.UserContext()); err != nil {
			return common.WriteError(c, err)
		}
		return common.StateJSON(c, a, "Confirmation cancelled")
	}
}

// ConfirmSend submits the pending payment. Settlement completes asynchronously.
// @Summary Confirm and send
// @Tags send
// @Produce json
// @Success 202 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /send/confirm [post]
func ConfirmSend(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		evt, err := a.ConfirmSend(c.UserContext())
		if err != nil {
			return common.WriteError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Payment processing", fiber.Map{
			"paymentId": evt.ID,
		})
	}
}

// ActivateReceive starts receive mode and returns the QR payload.
// @Summary Activate receive mode
// @Tags receive
// @Accept json
// @Produce json
// @Param request body ReceiveInput true "Charge"
// @Success 200 {object} common.Response{data=dto.ChargeRead}
// @Failure 400 {object} common.ProblemDetails
// @Router /receive [post]
func ActivateReceive(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ReceiveInput](c)
		if input == nil {
			return err
		}
		charge, err := a.ActivateReceiveMode(c.UserContext(), input.Amount, input.Concept)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid charge", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Receive mode active", mapper.MapChargeToDTO(charge))
	}
}

// CancelReceive deactivates receive mode.
// @Summary Cancel receive mode
// @Tags receive
// @Produce json
// @Success 200 {object} common.Response
// @Router /receive [delete]
func CancelReceive(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.CancelReceiveMode(c.UserContext()); err != nil {
			return common.WriteError(c, err)
		}
		return common.StateJSON(c, a, "Receive mode cancelled")
	}
}

// SimulateIncoming pays the active charge from the simulated customer.
// @Summary Simulate an incoming payment
// @Tags receive
// @Produce json
// @Success 202 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Router /receive/simulate [post]
func SimulateIncoming(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		evt, err := a.SimulateIncomingPayment(c.UserContext())
		if err != nil {
			return common.WriteError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusAccepted, "Incoming payment processing", fiber.Map{
			"paymentId": evt.ID,
		})
	}
}
