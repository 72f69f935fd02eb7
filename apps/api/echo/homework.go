package echoapi

import (
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/homework"
)

var homeworkOrdering = orderFields[homework.Homework]{
	"id":           byInt(func(hw homework.Homework) int { return hw.ID }),
	"subject":      byString(func(hw homework.Homework) string { return hw.Subject }),
	"status":       byString(func(hw homework.Homework) string { return hw.Status }),
	"dueDate":      byTime(func(hw homework.Homework) time.Time { return hw.DueDate }),
	"assignedDate": byTime(func(hw homework.Homework) time.Time { return hw.AssignedDate }),
}

type homeworkApi struct {
	svc        *homework.Service
	validate   *validator.Validate
	translator ut.Translator
	now        func() time.Time
}

func registerHomeworkAPI(
	g *echo.Group,
	svc *homework.Service,
	validate *validator.Validate,
	translator ut.Translator,
	now func() time.Time,
) {
	api := homeworkApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
		now:        now,
	}

	hg := g.Group("/homeworks")
	hg.GET("", api.query)
	hg.GET("/:id", api.retrieve)
	hg.PATCH("/:id/status", api.updateStatus)
}

// Handlers

func (api *homeworkApi) query(ctx echo.Context) error {
	hws, err := api.svc.Query()
	if err != nil {
		return errors.Wrap(err, "querying homeworks")
	}

	if due := ctx.QueryParam("due"); due != "" {
		bucket, err := homework.ParseDueBucket(due)
		if err != nil {
			return core.NewValidationError(errors.New("Invalid query"), core.FieldError{Field: "due", Error: err.Error()})
		}
		hws = homework.FilterDue(hws, bucket, api.now())
	}

	if err = applyOrdering(ctx, hws, homeworkOrdering); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, hws)
}

func (api *homeworkApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, homework.ErrNotFound)
	if err != nil {
		return err
	}
	hw, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "getting homework")
	}
	return ctx.JSON(http.StatusOK, hw)
}

func (api *homeworkApi) updateStatus(ctx echo.Context) error {
	var data homework.StatusUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to homework.StatusUpdate")
	}
	if err := data.Validate(api.validate); err != nil {
		return core.TranslateValidationErrors(err, api.translator, "Invalid status")
	}

	id, err := idParam(ctx, homework.ErrNotFound)
	if err != nil {
		return err
	}
	hw, err := api.svc.UpdateStatus(id, data)
	if err != nil {
		return errors.Wrap(err, "updating homework status")
	}
	return ctx.JSON(http.StatusOK, hw)
}
