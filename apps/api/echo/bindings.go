package echoapi

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.Ordering{Field: field, Ascending: !descending})
	}
}

// orderFields maps an ordering field name to a comparison of two items.
type orderFields[T any] map[string]func(a, b T) int

func byInt[T any](get func(T) int) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

func byString[T any](get func(T) string) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

func byTime[T any](get func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return get(a).Compare(get(b)) }
}

// applyOrdering sorts items in place following the request's `ordering` param. Ties keep insertion order.
func applyOrdering[T any](ctx echo.Context, items []T, fields orderFields[T]) error {
	var ord Ordering
	ord.Bind(ctx)
	if len(ord.Orderings) == 0 {
		return nil
	}

	cmps := make([]func(a, b T) int, 0, len(ord.Orderings))
	for _, o := range ord.Orderings {
		compare, ok := fields[o.Field]
		if !ok {
			return core.NewValidationError(
				errors.New("Invalid query"),
				core.FieldError{Field: orderingParam, Error: fmt.Sprintf("cannot order by %q", o.Field)},
			)
		}
		if !o.Ascending {
			asc := compare
			compare = func(a, b T) int { return asc(b, a) }
		}
		cmps = append(cmps, compare)
	}

	slices.SortStableFunc(items, func(a, b T) int {
		for _, compare := range cmps {
			if c := compare(a, b); c != 0 {
				return c
			}
		}
		return 0
	})
	return nil
}

// idParam parses the `:id` path param; anything but an integer matches no record.
func idParam(ctx echo.Context, notFound error) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, notFound
	}
	return id, nil
}
