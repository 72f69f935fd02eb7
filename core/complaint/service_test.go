package complaint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/complaint"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/services/email"
	"github.com/trezcool/shule/storage/database/inmem"
)

func setup(t *testing.T, conf *core.Config) (*complaint.Service, *emailsvc.ConsoleService) {
	t.Helper()
	mailer := emailsvc.NewConsoleServiceMock(conf)
	return complaint.NewService(inmemdb.NewComplaintRepository(inmemdb.Open()), mailer, conf), mailer
}

func TestService_Create(t *testing.T) {
	svc, mailer := setup(t, core.NewTestConfig())
	submitter := user.User{ID: 7, Username: "student7", FullName: "Asha Rao", ClassGrade: "10"}

	tests := []struct {
		name       string
		nc         complaint.NewComplaint
		wantUserID *int
		wantFrom   string
	}{
		{
			name:       "attributed",
			nc:         complaint.NewComplaint{Subject: "Canteen", Message: "The food is always cold."},
			wantUserID: core.IntPtr(7),
			wantFrom:   "From: Asha Rao (student7, class 10)",
		},
		{
			name:     "anonymous",
			nc:       complaint.NewComplaint{Subject: "Bullying", Message: "Please check the back benches.", IsAnonymous: true},
			wantFrom: "From: Anonymous",
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.Create(tt.nc, submitter)
			require.NoError(t, err)
			assert.Equal(t, i+1, c.ID)
			assert.Equal(t, tt.wantUserID, c.UserID)
			assert.Equal(t, complaint.StatusPending, c.Status)
			assert.False(t, c.Date.IsZero())

			sent := mailer.SentMessages()
			require.Len(t, sent, i+1)
			assert.Equal(t, "complaints@shule.test", sent[i].To[0].Address)
			assert.Contains(t, sent[i].TextContent, tt.wantFrom)
		})
	}
}

func TestService_Create_NoInbox(t *testing.T) {
	conf := core.NewTestConfig()
	conf.ComplaintsInbox = ""
	svc, mailer := setup(t, conf)

	_, err := svc.Create(complaint.NewComplaint{Subject: "Canteen", Message: "The food is always cold."}, user.User{ID: 1})
	require.NoError(t, err)
	assert.Empty(t, mailer.SentMessages())
}

func TestService_UpdateStatus(t *testing.T) {
	svc, _ := setup(t, core.NewTestConfig())
	c, err := svc.Create(complaint.NewComplaint{Subject: "Library", Message: "Longer opening hours please."}, user.User{ID: 1})
	require.NoError(t, err)

	c, err = svc.UpdateStatus(c.ID, complaint.StatusUpdate{Status: complaint.StatusAddressed})
	require.NoError(t, err)
	assert.Equal(t, complaint.StatusAddressed, c.Status)

	_, err = svc.UpdateStatus(c.ID+1, complaint.StatusUpdate{Status: complaint.StatusAddressed})
	assert.True(t, core.IsNotFound(err))
}
