package echoapi

import (
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/complaint"
)

var complaintOrdering = orderFields[complaint.Complaint]{
	"id":      byInt(func(c complaint.Complaint) int { return c.ID }),
	"subject": byString(func(c complaint.Complaint) string { return c.Subject }),
	"status":  byString(func(c complaint.Complaint) string { return c.Status }),
	"date":    byTime(func(c complaint.Complaint) time.Time { return c.Date }),
}

type complaintApi struct {
	svc        *complaint.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerComplaintAPI(
	g *echo.Group,
	authed echo.MiddlewareFunc,
	svc *complaint.Service,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := complaintApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	// every complaint endpoint requires a session
	cg := g.Group("/complaints", authed)
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.PATCH("/:id/status", api.updateStatus)
}

// Handlers

func (api *complaintApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	cs, err := api.svc.Query(core.IntPtr(usr.ID))
	if err != nil {
		return errors.Wrap(err, "querying complaints")
	}
	if err = applyOrdering(ctx, cs, complaintOrdering); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cs)
}

func (api *complaintApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var data complaint.NewComplaint
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to complaint.NewComplaint")
	}
	if err = data.Validate(api.validate); err != nil {
		return core.TranslateValidationErrors(err, api.translator, "Invalid complaint data")
	}

	c, err := api.svc.Create(data, usr)
	if err != nil {
		return errors.Wrap(err, "creating complaint")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *complaintApi) updateStatus(ctx echo.Context) error {
	var data complaint.StatusUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to complaint.StatusUpdate")
	}
	if err := data.Validate(api.validate); err != nil {
		return core.TranslateValidationErrors(err, api.translator, "Invalid status")
	}

	id, err := idParam(ctx, complaint.ErrNotFound)
	if err != nil {
		return err
	}
	c, err := api.svc.UpdateStatus(id, data)
	if err != nil {
		return errors.Wrap(err, "updating complaint status")
	}
	return ctx.JSON(http.StatusOK, c)
}
