package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/textbook"
)

var textbookOrdering = orderFields[textbook.Textbook]{
	"id":      byInt(func(tb textbook.Textbook) int { return tb.ID }),
	"title":   byString(func(tb textbook.Textbook) string { return tb.Title }),
	"subject": byString(func(tb textbook.Textbook) string { return tb.Subject }),
	"term":    byString(func(tb textbook.Textbook) string { return tb.Term }),
}

type textbookApi struct {
	svc *textbook.Service
}

func registerTextbookAPI(g *echo.Group, svc *textbook.Service) {
	api := textbookApi{svc: svc}

	tg := g.Group("/textbooks")
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)
}

// Handlers

func (api *textbookApi) query(ctx echo.Context) error {
	filter := textbook.QueryFilter{
		ClassGrade: ctx.QueryParam("classGrade"),
		Subject:    ctx.QueryParam("subject"),
	}
	tbs, err := api.svc.Query(filter)
	if err != nil {
		return errors.Wrap(err, "querying textbooks")
	}
	if err = applyOrdering(ctx, tbs, textbookOrdering); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tbs)
}

func (api *textbookApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, textbook.ErrNotFound)
	if err != nil {
		return err
	}
	tb, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "getting textbook")
	}
	return ctx.JSON(http.StatusOK, tb)
}
