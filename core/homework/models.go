package homework

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Homework struct {
	ID           int       `json:"id"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"dueDate"`
	AssignedDate time.Time `json:"assignedDate"`
	Status       string    `json:"status"`
}

// NewHomework contains information needed to create a new Homework.
type NewHomework struct {
	Subject      string    `json:"subject" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	DueDate      time.Time `json:"dueDate" validate:"required"`
	AssignedDate time.Time `json:"assignedDate" validate:"required"`
	Status       string    `json:"status" validate:"omitempty,oneof=pending completed"`
}

func (nh *NewHomework) Validate(validate *validator.Validate) error {
	nh.Subject = core.CleanString(nh.Subject)
	nh.Description = core.CleanString(nh.Description)
	nh.Status = core.CleanString(nh.Status, true /* lower */)
	return validate.Struct(nh)
}

// StatusUpdate is the payload of a status change.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending completed"`
}

func (su *StatusUpdate) Validate(validate *validator.Validate) error {
	return validate.Struct(su)
}
