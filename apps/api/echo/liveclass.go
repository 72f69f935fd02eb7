package echoapi

import (
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/liveclass"
)

var liveClassOrdering = orderFields[liveclass.LiveClass]{
	"id":        byInt(func(lc liveclass.LiveClass) int { return lc.ID }),
	"subject":   byString(func(lc liveclass.LiveClass) string { return lc.Subject }),
	"date":      byTime(func(lc liveclass.LiveClass) time.Time { return lc.Date }),
	"startTime": byTime(func(lc liveclass.LiveClass) time.Time { return lc.StartTime }),
}

// liveClassResponse adds the schedule badge to a live class.
type liveClassResponse struct {
	liveclass.LiveClass
	Label string `json:"label"`
}

type liveClassApi struct {
	svc        *liveclass.Service
	validate   *validator.Validate
	translator ut.Translator
	now        func() time.Time
}

func registerLiveClassAPI(
	g *echo.Group,
	svc *liveclass.Service,
	validate *validator.Validate,
	translator ut.Translator,
	now func() time.Time,
) {
	api := liveClassApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
		now:        now,
	}

	lg := g.Group("/live-classes")
	lg.GET("", api.query)
	lg.GET("/:id", api.retrieve)
	lg.PATCH("/:id/status", api.updateStatus)
}

func (api *liveClassApi) respond(lc liveclass.LiveClass, now time.Time) liveClassResponse {
	return liveClassResponse{LiveClass: lc, Label: liveclass.StatusLabel(lc, now)}
}

// Handlers

func (api *liveClassApi) query(ctx echo.Context) error {
	lcs, err := api.svc.Query()
	if err != nil {
		return errors.Wrap(err, "querying live classes")
	}

	now := api.now()
	if day := ctx.QueryParam("day"); day != "" {
		d, err := liveclass.ParseDayFilter(day)
		if err != nil {
			return core.NewValidationError(errors.New("Invalid query"), core.FieldError{Field: "day", Error: err.Error()})
		}
		lcs = liveclass.FilterDay(lcs, d, now)
	}
	if err = applyOrdering(ctx, lcs, liveClassOrdering); err != nil {
		return err
	}

	resp := make([]liveClassResponse, 0, len(lcs))
	for _, lc := range lcs {
		resp = append(resp, api.respond(lc, now))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *liveClassApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, liveclass.ErrNotFound)
	if err != nil {
		return err
	}
	lc, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "getting live class")
	}
	return ctx.JSON(http.StatusOK, api.respond(lc, api.now()))
}

func (api *liveClassApi) updateStatus(ctx echo.Context) error {
	var data liveclass.StatusUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to liveclass.StatusUpdate")
	}
	if err := data.Validate(api.validate); err != nil {
		return core.TranslateValidationErrors(err, api.translator, "Invalid status")
	}

	id, err := idParam(ctx, liveclass.ErrNotFound)
	if err != nil {
		return err
	}
	lc, err := api.svc.UpdateStatus(id, data)
	if err != nil {
		return errors.Wrap(err, "updating live class status")
	}
	return ctx.JSON(http.StatusOK, api.respond(lc, api.now()))
}
