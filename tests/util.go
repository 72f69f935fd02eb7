package testutil

import (
	"testing"

	"github.com/qawatake/fixify"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/complaint"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/storage/database/inmem"
)

// CreateUser stores a user with the given password (hashed) and returns it.
func CreateUser(t testing.TB, repo user.Repository, name, uname, pwd string) user.User {
	t.Helper()
	usr := user.User{
		Username:   uname,
		FullName:   name,
		ClassGrade: "10",
		RollNumber: "1",
		SchoolCode: "SCH001",
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// User is a fixture model for a student.
func User(uname string) *fixify.Model[user.User] {
	return fixify.NewModel(&user.User{
		Username:   uname,
		FullName:   uname,
		ClassGrade: "10",
		RollNumber: "1",
		SchoolCode: "SCH001",
	})
}

// Complaint is a fixture model; attached to a User it is submitted by that user unless anonymous.
func Complaint(subject string, anonymous bool) *fixify.Model[complaint.Complaint] {
	return fixify.NewModel(
		&complaint.Complaint{
			Subject:     subject,
			Message:     "a message long enough",
			Status:      complaint.StatusPending,
			IsAnonymous: anonymous,
		},
		fixify.ConnectorFunc(func(_ testing.TB, c *complaint.Complaint, usr *user.User) {
			c.UserID = core.IntPtr(usr.ID)
		}),
	)
}

// Persist inserts the fixture models in dependency order, updating them with their stored ids.
func Persist(t testing.TB, db *inmemdb.DB, models ...fixify.IModel) {
	t.Helper()
	usrRepo := inmemdb.NewUserRepository(db)
	cRepo := inmemdb.NewComplaintRepository(db)

	fixify.New(t, models...).Iterate(func(v any) error {
		var err error
		switch v := v.(type) {
		case *user.User:
			*v, err = usrRepo.CreateUser(*v)
		case *complaint.Complaint:
			*v, err = cRepo.CreateComplaint(*v)
		}
		return err
	})
}
