package complaint

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusPending   = "pending"
	StatusAddressed = "addressed"
)

type Complaint struct {
	ID          int       `json:"id"`
	UserID      *int      `json:"userId,omitempty"` // nil when anonymous
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	IsAnonymous bool      `json:"isAnonymous"`
}

// NewComplaint is what a student submits; the submitter and date are set by the service.
type NewComplaint struct {
	Subject     string `json:"subject" validate:"required,min=2"`
	Message     string `json:"message" validate:"required,min=10"`
	IsAnonymous bool   `json:"isAnonymous"`
}

func (nc *NewComplaint) Validate(validate *validator.Validate) error {
	nc.Subject = core.CleanString(nc.Subject)
	nc.Message = core.CleanString(nc.Message)
	return validate.Struct(nc)
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending addressed"`
}

func (su *StatusUpdate) Validate(validate *validator.Validate) error {
	return validate.Struct(su)
}

// QueryFilter with a nil UserID lists every complaint. Otherwise it lists the
// user's own complaints plus all non-anonymous ones.
type QueryFilter struct {
	UserID *int
}

func (f QueryFilter) Matches(c Complaint) bool {
	if f.UserID == nil {
		return true
	}
	return !c.IsAnonymous || (c.UserID != nil && *c.UserID == *f.UserID)
}
