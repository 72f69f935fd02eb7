package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/circular"
	"github.com/trezcool/shule/core/notice"
)

var (
	noticeOrdering = orderFields[notice.Notice]{
		"id":    byInt(func(n notice.Notice) int { return n.ID }),
		"title": byString(func(n notice.Notice) string { return n.Title }),
		"date":  byTime(func(n notice.Notice) time.Time { return n.Date }),
	}
	circularOrdering = orderFields[circular.Circular]{
		"id":       byInt(func(c circular.Circular) int { return c.ID }),
		"title":    byString(func(c circular.Circular) string { return c.Title }),
		"category": byString(func(c circular.Circular) string { return c.Category }),
		"date":     byTime(func(c circular.Circular) time.Time { return c.Date }),
	}
)

type noticeApi struct {
	svc *notice.Service
}

func registerNoticeAPI(g *echo.Group, svc *notice.Service) {
	api := noticeApi{svc: svc}

	ng := g.Group("/notices")
	ng.GET("", api.query)
	ng.GET("/:id", api.retrieve)
}

func (api *noticeApi) query(ctx echo.Context) error {
	ns, err := api.svc.Query()
	if err != nil {
		return errors.Wrap(err, "querying notices")
	}
	if err = applyOrdering(ctx, ns, noticeOrdering); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ns)
}

func (api *noticeApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, notice.ErrNotFound)
	if err != nil {
		return err
	}
	n, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "getting notice")
	}
	return ctx.JSON(http.StatusOK, n)
}

type circularApi struct {
	svc *circular.Service
}

func registerCircularAPI(g *echo.Group, svc *circular.Service) {
	api := circularApi{svc: svc}

	cg := g.Group("/circulars")
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
}

func (api *circularApi) query(ctx echo.Context) error {
	cs, err := api.svc.Query(circular.QueryFilter{Category: ctx.QueryParam("category")})
	if err != nil {
		return errors.Wrap(err, "querying circulars")
	}
	if err = applyOrdering(ctx, cs, circularOrdering); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cs)
}

func (api *circularApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx, circular.ErrNotFound)
	if err != nil {
		return err
	}
	c, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "getting circular")
	}
	return ctx.JSON(http.StatusOK, c)
}
