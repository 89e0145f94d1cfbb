// Package session exposes login, logout, navigation and the state read model.
package session

import (
	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/domain/session"
	"github.com/amirasaad/compago/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(r fiber.Router, a *app.App) {
	r.Get("/state", State(a))
	r.Post("/session/login", Login(a))
	r.Post("/session/logout", Logout(a))
	r.Post("/navigate", Navigate(a))
	r.Delete("/notification", DismissNotification(a))
}

// State returns the full view state.
// @Summary Current state
// @Tags session
// @Produce json
// @Success 200 {object} common.Response
// @Router /state [get]
func State(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.StateJSON(c, a, "state")
	}
}

// Login checks the PIN.
// @Summary Log in with the wallet PIN
// @Tags session
// @Accept json
// @Produce json
// @Param request body LoginInput true "PIN"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /session/login [post]
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		if err := a.Login(c.UserContext(), input.Pin); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid PIN", err, "PIN incorrecto. Intente de nuevo.")
		}
		return common.StateJSON(c, a, "Success login")
	}
}

// Logout ends the session. Always succeeds.
// @Summary Log out
// @Tags session
// @Produce json
// @Success 200 {object} common.Response
// @Router /session/logout [post]
func Logout(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Logout(c.UserContext()); err != nil {
			return common.WriteError(c, err)
		}
		return common.StateJSON(c, a, "Logged out")
	}
}

// Navigate switches screens.
// @Summary Navigate to a screen
// @Tags session
// @Accept json
// @Produce json
// @Param request body NavigateInput true "Target screen"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /navigate [post]
func Navigate(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NavigateInput](c)
		if input == nil {
			return err
		}
		screen, err := session.ParseScreen(input.Screen)
		if err != nil {
			return common.WriteError(c, err)
		}
		if err := a.Navigate(c.UserContext(), screen); err != nil {
			return common.WriteError(c, err)
		}
		return common.StateJSON(c, a, "Navigated")
	}
}

// DismissNotification hides the active notification.
// @Summary Dismiss the notification
// @Tags session
// @Produce json
// @Success 200 {object} common.Response
// @Router /notification [delete]
func DismissNotification(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := a.DismissNotification(c.UserContext()); err != nil {
			return common.WriteError(c, err)
		}
		return common.StateJSON(c, a, "Notification dismissed")
	}
}
