package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/storage/database/inmem"
)

func createHomeworks(t *testing.T, app *testApp) (dueTomorrow, dueToday, dueYesterday, dueLastWeek homework.Homework) {
	t.Helper()
	repo := inmemdb.NewHomeworkRepository(app.db)
	create := func(subject string, dueInDays int, status string) homework.Homework {
		hw, err := repo.CreateHomework(homework.Homework{
			Subject:      subject,
			Description:  subject + " homework",
			DueDate:      now.AddDate(0, 0, dueInDays),
			AssignedDate: now.AddDate(0, 0, dueInDays-3),
			Status:       status,
		})
		require.NoError(t, err)
		return hw
	}
	dueTomorrow = create("Mathematics", 1, homework.StatusPending)
	dueToday = create("Science", 0, homework.StatusPending)
	dueYesterday = create("English", -1, homework.StatusCompleted)
	dueLastWeek = create("History", -6, homework.StatusCompleted)
	return
}

func Test_homeworkApi_query(t *testing.T) {
	app := setup(t)
	tomorrow, today, yesterday, lastWeek := createHomeworks(t, app)

	tests := []httpTest{
		{name: "all, in insertion order", path: "/api/homeworks", wantData: marchallList(t, tomorrow, today, yesterday, lastWeek)},
		{name: "trailing slash", path: "/api/homeworks/", wantData: marchallList(t, tomorrow, today, yesterday, lastWeek)},
		{name: "due today", path: "/api/homeworks?due=today", wantData: marchallList(t, today)},
		{name: "due yesterday", path: "/api/homeworks?due=yesterday", wantData: marchallList(t, yesterday)},
		{name: "due this week", path: "/api/homeworks?due=thisWeek", wantData: marchallList(t, today, yesterday)},
		{name: "due last week", path: "/api/homeworks?due=lastWeek", wantData: marchallList(t, lastWeek)},
		{
			name: "unknown due filter", path: "/api/homeworks?due=someday", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Invalid query",
				Errors:  []core.FieldError{{Field: "due", Error: homework.ErrUnknownBucket.Error()}},
			}),
		},
		{name: "order by dueDate", path: "/api/homeworks?ordering=dueDate", wantData: marchallList(t, lastWeek, yesterday, today, tomorrow)},
		{name: "order by status,-id", path: "/api/homeworks?ordering=status,-id", wantData: marchallList(t, lastWeek, yesterday, today, tomorrow)},
		{
			name: "order by unknown field", path: "/api/homeworks?ordering=teacher", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Invalid query",
				Errors:  []core.FieldError{{Field: "ordering", Error: `cannot order by "teacher"`}},
			}),
		},
	}
	runHTTPTests(t, app, tests)
}

func Test_homeworkApi_retrieve(t *testing.T) {
	app := setup(t)
	tomorrow, _, _, _ := createHomeworks(t, app)

	notFound := marchallObj(t, httpErr{Message: homework.ErrNotFound.Error()})
	tests := []httpTest{
		{name: "found", path: "/api/homeworks/1", wantData: marchallObj(t, tomorrow)},
		{name: "unknown id", path: "/api/homeworks/99", wantCode: http.StatusNotFound, wantData: notFound},
		{name: "non-numeric id", path: "/api/homeworks/abc", wantCode: http.StatusNotFound, wantData: notFound},
	}
	runHTTPTests(t, app, tests)
}

func Test_homeworkApi_updateStatus(t *testing.T) {
	app := setup(t)
	tomorrow, _, _, _ := createHomeworks(t, app)

	completed := tomorrow
	completed.Status = homework.StatusCompleted

	tests := []httpTest{
		{
			name: "invalid status", path: "/api/homeworks/1/status", body: []byte(`{"status":"archived"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Invalid status",
				Errors:  []core.FieldError{{Field: "status", Error: "status must be one of [pending completed]"}},
			}),
		},
		{
			name: "missing status", path: "/api/homeworks/1/status", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Invalid status",
				Errors:  []core.FieldError{{Field: "status", Error: "this field is required"}},
			}),
		},
		{
			name: "invalid status on unknown id", path: "/api/homeworks/99/status", body: []byte(`{"status":"archived"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown id", path: "/api/homeworks/99/status", body: []byte(`{"status":"completed"}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: homework.ErrNotFound.Error()}),
		},
		{name: "completed", path: "/api/homeworks/1/status", body: []byte(`{"status":"completed"}`), wantData: marchallObj(t, completed)},
	}
	for i := range tests {
		tests[i].method = http.MethodPatch
	}
	runHTTPTests(t, app, tests)

	// only the valid update was applied
	hw, err := inmemdb.NewHomeworkRepository(app.db).GetHomeworkByID(1)
	require.NoError(t, err)
	assert.Equal(t, homework.StatusCompleted, hw.Status)
}
