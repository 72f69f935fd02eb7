package liveclass

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusUpcoming = "upcoming"
	StatusLive     = "live"
)

type LiveClass struct {
	ID          int       `json:"id"`
	Subject     string    `json:"subject"`
	Teacher     string    `json:"teacher"`
	Date        time.Time `json:"date"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	MeetingLink string    `json:"meetingLink"`
	Status      string    `json:"status"`
}

type NewLiveClass struct {
	Subject     string    `json:"subject" validate:"required"`
	Teacher     string    `json:"teacher" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	MeetingLink string    `json:"meetingLink" validate:"required,url"`
	Status      string    `json:"status" validate:"omitempty,oneof=upcoming live"`
}

func (nl *NewLiveClass) Validate(validate *validator.Validate) error {
	nl.Subject = core.CleanString(nl.Subject)
	nl.Teacher = core.CleanString(nl.Teacher)
	nl.Status = core.CleanString(nl.Status, true /* lower */)
	return validate.Struct(nl)
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=upcoming live"`
}

func (su *StatusUpdate) Validate(validate *validator.Validate) error {
	return validate.Struct(su)
}
