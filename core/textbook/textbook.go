package textbook

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = core.NewNotFoundError("textbook not found")

type (
	Textbook struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		Subject     string `json:"subject"`
		Description string `json:"description,omitempty"`
		ImageURL    string `json:"imageUrl,omitempty"`
		FilePath    string `json:"filePath"`
		ClassGrade  string `json:"classGrade"`
		Term        string `json:"term,omitempty"`
	}

	NewTextbook struct {
		Title       string `json:"title" validate:"required"`
		Subject     string `json:"subject" validate:"required"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
		FilePath    string `json:"filePath" validate:"required"`
		ClassGrade  string `json:"classGrade" validate:"required"`
		Term        string `json:"term"`
	}

	// QueryFilter constrains textbooks by exact match; empty fields match everything.
	QueryFilter struct {
		ClassGrade string `query:"classGrade"`
		Subject    string `query:"subject"`
	}

	Repository interface {
		CreateTextbook(tb Textbook) (Textbook, error)
		QueryTextbooks(filter QueryFilter) ([]Textbook, error)
		GetTextbookByID(id int) (Textbook, error)
	}

	Service struct {
		repo Repository
	}
)

func (nt *NewTextbook) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	nt.Subject = core.CleanString(nt.Subject)
	nt.ClassGrade = core.CleanString(nt.ClassGrade)
	return validate.Struct(nt)
}

// Matches reports whether tb satisfies every non-empty constraint of f.
func (f QueryFilter) Matches(tb Textbook) bool {
	if f.ClassGrade != "" && tb.ClassGrade != f.ClassGrade {
		return false
	}
	if f.Subject != "" && tb.Subject != f.Subject {
		return false
	}
	return true
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nt NewTextbook) (Textbook, error) {
	tb, err := svc.repo.CreateTextbook(Textbook{
		Title:       nt.Title,
		Subject:     nt.Subject,
		Description: nt.Description,
		ImageURL:    nt.ImageURL,
		FilePath:    nt.FilePath,
		ClassGrade:  nt.ClassGrade,
		Term:        nt.Term,
	})
	return tb, errors.Wrap(err, "creating textbook")
}

func (svc *Service) Query(filter QueryFilter) ([]Textbook, error) {
	return svc.repo.QueryTextbooks(filter)
}

func (svc *Service) GetByID(id int) (Textbook, error) {
	return svc.repo.GetTextbookByID(id)
}
