package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/agreste/internal/service/census"
	"github.com/ougirez/agreste/internal/service/state"
)

type viewRequest struct {
	State  *state.AppState `json:"state"`
	Action *state.Action   `json:"action"`
}

type viewResponse struct {
	State   state.AppState  `json:"state"`
	Summary *census.Summary `json:"summary"`
}

// PostView applies an action to the client's state and returns the new state with
// the figures it displays. A missing state starts from the default one.
func (c *Controller) PostView(ctx echo.Context) error {
	var req viewRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	current := state.Default()
	if req.State != nil {
		current = *req.State
	}

	next := current
	if req.Action != nil {
		next = state.Reduce(current, *req.Action)
	}

	summary, err := c.census.Summary(next.Selection())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, viewResponse{State: next, Summary: summary})
}
