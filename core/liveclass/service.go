package liveclass

import (
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = core.NewNotFoundError("live class not found")

type (
	Repository interface {
		CreateLiveClass(lc LiveClass) (LiveClass, error)
		QueryLiveClasses() ([]LiveClass, error)
		GetLiveClassByID(id int) (LiveClass, error)
		UpdateLiveClassStatus(id int, status string) (LiveClass, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nl NewLiveClass) (LiveClass, error) {
	lc := LiveClass{
		Subject:     nl.Subject,
		Teacher:     nl.Teacher,
		Date:        nl.Date,
		StartTime:   nl.StartTime,
		EndTime:     nl.EndTime,
		MeetingLink: nl.MeetingLink,
		Status:      nl.Status,
	}
	if lc.Status == "" {
		lc.Status = StatusUpcoming
	}
	lc, err := svc.repo.CreateLiveClass(lc)
	return lc, errors.Wrap(err, "creating live class")
}

func (svc *Service) Query() ([]LiveClass, error) {
	return svc.repo.QueryLiveClasses()
}

func (svc *Service) GetByID(id int) (LiveClass, error) {
	return svc.repo.GetLiveClassByID(id)
}

func (svc *Service) UpdateStatus(id int, su StatusUpdate) (LiveClass, error) {
	return svc.repo.UpdateLiveClassStatus(id, su.Status)
}
