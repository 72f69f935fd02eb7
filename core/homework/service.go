package homework

import (
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = core.NewNotFoundError("homework not found")

type (
	Repository interface {
		CreateHomework(hw Homework) (Homework, error)
		QueryHomeworks() ([]Homework, error)
		GetHomeworkByID(id int) (Homework, error)
		// UpdateHomeworkStatus does not check `status`; callers validate it.
		UpdateHomeworkStatus(id int, status string) (Homework, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nh NewHomework) (Homework, error) {
	hw := Homework{
		Subject:      nh.Subject,
		Description:  nh.Description,
		DueDate:      nh.DueDate,
		AssignedDate: nh.AssignedDate,
		Status:       nh.Status,
	}
	if hw.Status == "" {
		hw.Status = StatusPending
	}
	hw, err := svc.repo.CreateHomework(hw)
	return hw, errors.Wrap(err, "creating homework")
}

func (svc *Service) Query() ([]Homework, error) {
	return svc.repo.QueryHomeworks()
}

func (svc *Service) GetByID(id int) (Homework, error) {
	return svc.repo.GetHomeworkByID(id)
}

func (svc *Service) UpdateStatus(id int, su StatusUpdate) (Homework, error) {
	return svc.repo.UpdateHomeworkStatus(id, su.Status)
}
