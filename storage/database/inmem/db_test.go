package inmemdb_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/circular"
	"github.com/trezcool/shule/core/complaint"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/liveclass"
	"github.com/trezcool/shule/core/textbook"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/storage/database/inmem"
	"github.com/trezcool/shule/tests"
)

func TestHomeworkRepository_CreateHomework(t *testing.T) {
	repo := inmemdb.NewHomeworkRepository(inmemdb.Open())
	now := time.Now()

	var lastID int
	for i := 0; i < 5; i++ {
		hw, err := repo.CreateHomework(homework.Homework{Subject: "Maths", DueDate: now, AssignedDate: now})
		require.NoError(t, err)
		assert.Greater(t, hw.ID, lastID)
		assert.Equal(t, homework.StatusPending, hw.Status)
		lastID = hw.ID
	}
	assert.Equal(t, 5, lastID)
}

func TestTable_ConcurrentCreates(t *testing.T) {
	db := inmemdb.Open()
	repo := inmemdb.NewTextbookRepository(db)

	const n = 100
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tb, err := repo.CreateTextbook(textbook.Textbook{Title: "Book", FilePath: "/b.pdf", ClassGrade: "10"})
			assert.NoError(t, err)
			ids <- tb.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	// listing follows id order
	tbs, err := repo.QueryTextbooks(textbook.QueryFilter{})
	require.NoError(t, err)
	for i := 1; i < len(tbs); i++ {
		assert.Greater(t, tbs[i].ID, tbs[i-1].ID)
	}
	assert.Equal(t, n, db.Counts().Textbooks)
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo := inmemdb.NewUserRepository(inmemdb.Open())
	testutil.CreateUser(t, repo, "Rahul Kumar", "student1", "password")

	_, err := repo.CreateUser(user.User{Username: "student1", FullName: "Someone Else"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	usrs, err := repo.QueryAllUsers()
	require.NoError(t, err)
	assert.Len(t, usrs, 1)
}

func TestUserRepository_Get(t *testing.T) {
	repo := inmemdb.NewUserRepository(inmemdb.Open())
	usr := testutil.CreateUser(t, repo, "Rahul Kumar", "student1", "password")

	got, err := repo.GetUserByID(usr.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(usr, got); diff != "" {
		t.Errorf("GetUserByID() mismatch (-want +got):\n%s", diff)
	}

	got, err = repo.GetUserByUsername("student1")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	_, err = repo.GetUserByID(42)
	assert.True(t, core.IsNotFound(err))
	_, err = repo.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestStatusUpdates_UnknownID(t *testing.T) {
	db := inmemdb.Open()

	_, err := inmemdb.NewHomeworkRepository(db).UpdateHomeworkStatus(99, homework.StatusCompleted)
	assert.ErrorIs(t, err, homework.ErrNotFound)

	_, err = inmemdb.NewLiveClassRepository(db).UpdateLiveClassStatus(99, liveclass.StatusLive)
	assert.ErrorIs(t, err, liveclass.ErrNotFound)

	_, err = inmemdb.NewComplaintRepository(db).UpdateComplaintStatus(99, complaint.StatusAddressed)
	assert.ErrorIs(t, err, complaint.ErrNotFound)
}

func TestHomeworkRepository_UpdateHomeworkStatus(t *testing.T) {
	repo := inmemdb.NewHomeworkRepository(inmemdb.Open())
	hw, err := repo.CreateHomework(homework.Homework{Subject: "Science"})
	require.NoError(t, err)

	updated, err := repo.UpdateHomeworkStatus(hw.ID, homework.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, homework.StatusCompleted, updated.Status)

	got, err := repo.GetHomeworkByID(hw.ID)
	require.NoError(t, err)
	assert.Equal(t, homework.StatusCompleted, got.Status)
	assert.Equal(t, hw.Subject, got.Subject)
}

func TestTextbookRepository_QueryTextbooks(t *testing.T) {
	repo := inmemdb.NewTextbookRepository(inmemdb.Open())
	for _, tb := range []textbook.Textbook{
		{Title: "Maths 10", Subject: "Mathematics", ClassGrade: "10"},
		{Title: "Science 10", Subject: "Science", ClassGrade: "10"},
		{Title: "Maths 9", Subject: "Mathematics", ClassGrade: "9"},
	} {
		_, err := repo.CreateTextbook(tb)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter textbook.QueryFilter
		want   []string
	}{
		{name: "no filter", filter: textbook.QueryFilter{}, want: []string{"Maths 10", "Science 10", "Maths 9"}},
		{name: "grade", filter: textbook.QueryFilter{ClassGrade: "10"}, want: []string{"Maths 10", "Science 10"}},
		{name: "subject", filter: textbook.QueryFilter{Subject: "Mathematics"}, want: []string{"Maths 10", "Maths 9"}},
		{name: "grade and subject", filter: textbook.QueryFilter{ClassGrade: "9", Subject: "Mathematics"}, want: []string{"Maths 9"}},
		{name: "grade is exact", filter: textbook.QueryFilter{ClassGrade: "1"}, want: []string{}},
		{name: "unused grade", filter: textbook.QueryFilter{ClassGrade: "12"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbs, err := repo.QueryTextbooks(tt.filter)
			require.NoError(t, err)
			titles := make([]string, 0, len(tbs))
			for _, tb := range tbs {
				titles = append(titles, tb.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestCircularRepository_QueryCirculars(t *testing.T) {
	repo := inmemdb.NewCircularRepository(inmemdb.Open())
	for _, c := range []circular.Circular{
		{Title: "Exams", Category: "exams"},
		{Title: "Sports", Category: "events"},
		{Title: "Misc"},
	} {
		_, err := repo.CreateCircular(c)
		require.NoError(t, err)
	}

	tests := []struct {
		category string
		wantLen  int
	}{
		{category: "", wantLen: 3},
		{category: circular.CategoryAll, wantLen: 3},
		{category: "exams", wantLen: 1},
		{category: circular.CategoryGeneral, wantLen: 1},
		{category: "unknown", wantLen: 0},
	}
	for _, tt := range tests {
		t.Run("category="+tt.category, func(t *testing.T) {
			cs, err := repo.QueryCirculars(circular.QueryFilter{Category: tt.category})
			require.NoError(t, err)
			assert.Len(t, cs, tt.wantLen)
		})
	}
}

func TestComplaintRepository_CreateComplaint_Anonymous(t *testing.T) {
	repo := inmemdb.NewComplaintRepository(inmemdb.Open())

	c, err := repo.CreateComplaint(complaint.Complaint{
		UserID:      core.IntPtr(7),
		Subject:     "Noise",
		Message:     "Too loud in the library",
		IsAnonymous: true,
	})
	require.NoError(t, err)
	assert.Nil(t, c.UserID)
	assert.Equal(t, complaint.StatusPending, c.Status)

	got, err := repo.GetComplaintByID(c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)

	visible, err := repo.QueryComplaints(complaint.QueryFilter{UserID: core.IntPtr(3)})
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestComplaintRepository_QueryComplaints(t *testing.T) {
	db := inmemdb.Open()

	var (
		own, ownAnon, public, othersAnon = testutil.Complaint("own", false), testutil.Complaint("own anonymous", true),
			testutil.Complaint("public", false), testutil.Complaint("others anonymous", true)
		student1, student2 = testutil.User("student1"), testutil.User("student2")
	)
	testutil.Persist(t, db,
		student1.With(own, ownAnon),
		student2.With(public, othersAnon),
	)
	uid1 := student1.Value().ID
	require.NotZero(t, uid1)
	require.NotNil(t, own.Value().UserID)
	assert.Equal(t, uid1, *own.Value().UserID)

	repo := inmemdb.NewComplaintRepository(db)

	all, err := repo.QueryComplaints(complaint.QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	visible, err := repo.QueryComplaints(complaint.QueryFilter{UserID: &uid1})
	require.NoError(t, err)
	subjects := make([]string, 0, len(visible))
	for _, c := range visible {
		assert.True(t, !c.IsAnonymous || (c.UserID != nil && *c.UserID == uid1))
		subjects = append(subjects, c.Subject)
	}
	// anonymous complaints carry no user, so even the author cannot see theirs back
	assert.ElementsMatch(t, []string{"own", "public"}, subjects)
}

func TestDB_Counts(t *testing.T) {
	db := inmemdb.Open()
	testutil.CreateUser(t, inmemdb.NewUserRepository(db), "A", "a", "")
	_, err := inmemdb.NewLiveClassRepository(db).CreateLiveClass(liveclass.LiveClass{Subject: "English"})
	require.NoError(t, err)

	want := inmemdb.Counts{Users: 1, LiveClasses: 1}
	if diff := cmp.Diff(want, db.Counts()); diff != "" {
		t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
	}
}
