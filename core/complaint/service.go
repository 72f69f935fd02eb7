package complaint

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

var ErrNotFound = core.NewNotFoundError("complaint not found")

type (
	Repository interface {
		// CreateComplaint drops UserID when c.IsAnonymous is set.
		CreateComplaint(c Complaint) (Complaint, error)
		QueryComplaints(filter QueryFilter) ([]Complaint, error)
		GetComplaintByID(id int) (Complaint, error)
		UpdateComplaintStatus(id int, status string) (Complaint, error)
	}

	Service struct {
		repo   Repository
		mailer core.EmailService
		inbox  string
		now    func() time.Time
	}
)

func NewService(repo Repository, mailer core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		inbox:  conf.ComplaintsInbox,
		now:    time.Now,
	}
}

// Create stores the complaint on behalf of submitter and notifies the complaints inbox.
func (svc *Service) Create(nc NewComplaint, submitter user.User) (Complaint, error) {
	c := Complaint{
		Subject:     nc.Subject,
		Message:     nc.Message,
		Date:        svc.now(),
		Status:      StatusPending,
		IsAnonymous: nc.IsAnonymous,
	}
	if !nc.IsAnonymous {
		c.UserID = core.IntPtr(submitter.ID)
	}

	c, err := svc.repo.CreateComplaint(c)
	if err != nil {
		return Complaint{}, errors.Wrap(err, "creating complaint")
	}
	svc.notify(c, submitter)
	return c, nil
}

func (svc *Service) notify(c Complaint, submitter user.User) {
	if svc.inbox == "" || svc.mailer == nil {
		return
	}
	from := "Anonymous"
	if !c.IsAnonymous {
		from = fmt.Sprintf("%s (%s, class %s)", submitter.FullName, submitter.Username, submitter.ClassGrade)
	}
	svc.mailer.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: svc.inbox}},
		Subject:      "New complaint: " + c.Subject,
		TemplateName: "complaint_received",
		TemplateData: map[string]interface{}{
			"Date":      c.Date.Format("Mon, 02 Jan 2006 15:04"),
			"Submitter": from,
			"Subject":   c.Subject,
			"Message":   c.Message,
		},
	})
}

// Query lists the complaints visible to userID (all of them when nil).
func (svc *Service) Query(userID *int) ([]Complaint, error) {
	return svc.repo.QueryComplaints(QueryFilter{UserID: userID})
}

func (svc *Service) GetByID(id int) (Complaint, error) {
	return svc.repo.GetComplaintByID(id)
}

func (svc *Service) UpdateStatus(id int, su StatusUpdate) (Complaint, error) {
	return svc.repo.UpdateComplaintStatus(id, su.Status)
}
