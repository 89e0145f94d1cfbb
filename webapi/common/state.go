package common

import (
	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/mapper"
	"github.com/gofiber/fiber/v2"
)

// StateJSON responds with the controller state after a view event.
func StateJSON(c *fiber.Ctx, a *app.App, message string) error {
	snap, err := a.Snapshot(c.UserContext())
	if err != nil {
		return WriteError(c, err)
	}
	return SuccessResponseJSON(c, fiber.StatusOK, message, mapper.MapSnapshotToDTO(snap))
}
