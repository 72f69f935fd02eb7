package notice

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = core.NewNotFoundError("notice not found")

type (
	Notice struct {
		ID       int       `json:"id"`
		Title    string    `json:"title"`
		Content  string    `json:"content"`
		Date     time.Time `json:"date"`
		ImageURL string    `json:"imageUrl,omitempty"`
		IsNew    bool      `json:"isNew"`
	}

	NewNotice struct {
		Title    string    `json:"title" validate:"required"`
		Content  string    `json:"content" validate:"required"`
		Date     time.Time `json:"date" validate:"required"`
		ImageURL string    `json:"imageUrl" validate:"omitempty,url"`
		IsNew    *bool     `json:"isNew"` // defaults to true
	}

	Repository interface {
		CreateNotice(n Notice) (Notice, error)
		QueryNotices() ([]Notice, error)
		GetNoticeByID(id int) (Notice, error)
	}

	Service struct {
		repo Repository
	}
)

func (nn *NewNotice) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	return validate.Struct(nn)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nn NewNotice) (Notice, error) {
	isNew := true
	if nn.IsNew != nil {
		isNew = *nn.IsNew
	}
	n, err := svc.repo.CreateNotice(Notice{
		Title:    nn.Title,
		Content:  nn.Content,
		Date:     nn.Date,
		ImageURL: nn.ImageURL,
		IsNew:    isNew,
	})
	return n, errors.Wrap(err, "creating notice")
}

func (svc *Service) Query() ([]Notice, error) {
	return svc.repo.QueryNotices()
}

func (svc *Service) GetByID(id int) (Notice, error) {
	return svc.repo.GetNoticeByID(id)
}
