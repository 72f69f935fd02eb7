package circular

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

const (
	CategoryGeneral = "general"
	// CategoryAll is a wildcard, never a stored category.
	CategoryAll = "all"
)

var ErrNotFound = core.NewNotFoundError("circular not found")

type (
	Circular struct {
		ID          int       `json:"id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
		Category    string    `json:"category"`
		FilePath    string    `json:"filePath"`
		IsNew       bool      `json:"isNew"`
	}

	NewCircular struct {
		Title       string    `json:"title" validate:"required"`
		Description string    `json:"description" validate:"required"`
		Date        time.Time `json:"date" validate:"required"`
		Category    string    `json:"category" validate:"omitempty,ne=all"`
		FilePath    string    `json:"filePath" validate:"required"`
		IsNew       *bool     `json:"isNew"` // defaults to true
	}

	QueryFilter struct {
		Category string `query:"category"`
	}

	Repository interface {
		CreateCircular(c Circular) (Circular, error)
		QueryCirculars(filter QueryFilter) ([]Circular, error)
		GetCircularByID(id int) (Circular, error)
	}

	Service struct {
		repo Repository
	}
)

func (nc *NewCircular) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Category = core.CleanString(nc.Category, true /* lower */)
	return validate.Struct(nc)
}

// Matches treats an empty category and "all" as no constraint.
func (f QueryFilter) Matches(c Circular) bool {
	if f.Category == "" || f.Category == CategoryAll {
		return true
	}
	return c.Category == f.Category
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewCircular) (Circular, error) {
	c := Circular{
		Title:       nc.Title,
		Description: nc.Description,
		Date:        nc.Date,
		Category:    nc.Category,
		FilePath:    nc.FilePath,
		IsNew:       true,
	}
	if c.Category == "" {
		c.Category = CategoryGeneral
	}
	if nc.IsNew != nil {
		c.IsNew = *nc.IsNew
	}
	c, err := svc.repo.CreateCircular(c)
	return c, errors.Wrap(err, "creating circular")
}

func (svc *Service) Query(filter QueryFilter) ([]Circular, error) {
	return svc.repo.QueryCirculars(filter)
}

func (svc *Service) GetByID(id int) (Circular, error) {
	return svc.repo.GetCircularByID(id)
}
