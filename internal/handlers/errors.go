package handlers

import (
	"errors"

	"taskboard/internal/common"
	"taskboard/internal/services"

	"github.com/labstack/echo/v4"
)

// sendResourceError maps service errors to the wire contract. Ownership
// mismatches map to 404 like missing resources, so a caller can't probe
// whether an id exists under another account.
func sendResourceError(c echo.Context, resource string, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNotOwner):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, services.ErrProjectNotOwned):
		return common.SendValidationError(c, "project_id", "project does not exist or is not yours")
	default:
		return common.SendServerError(c, "Request failed")
	}
}
