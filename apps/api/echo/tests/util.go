package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/circular"
	"github.com/trezcool/shule/core/complaint"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/liveclass"
	"github.com/trezcool/shule/core/notice"
	"github.com/trezcool/shule/core/textbook"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/services/email"
	"github.com/trezcool/shule/storage/database/inmem"
)

// Wednesday 6 March 2024, 10:00 UTC
var now = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

type testApp struct {
	*echoapi.Server
	conf     *core.Config
	db       *inmemdb.DB
	sessions *inmemdb.SessionStore
	mailer   *emailsvc.ConsoleService
	registry *prometheus.Registry
	usrRepo  user.Repository
}

func setup(t *testing.T) *testApp {
	t.Helper()
	conf := core.NewTestConfig()

	// set up DB & repos
	db := inmemdb.Open()
	sessions := inmemdb.NewSessionStore(conf)
	usrRepo := inmemdb.NewUserRepository(db)

	// set up validation
	validate := validator.New()
	enLocale := en.New()
	translator, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// set up services
	mailer := emailsvc.NewConsoleServiceMock(conf)
	registry := prometheus.NewRegistry()

	srv := echoapi.NewServer(&echoapi.Options{
		Conf:         conf,
		Validate:     validate,
		Translator:   translator,
		Registerer:   registry,
		Stats:        db,
		Sessions:     sessions,
		Now:          func() time.Time { return now },
		UserSvc:      user.NewService(usrRepo),
		HomeworkSvc:  homework.NewService(inmemdb.NewHomeworkRepository(db)),
		TextbookSvc:  textbook.NewService(inmemdb.NewTextbookRepository(db)),
		LiveClassSvc: liveclass.NewService(inmemdb.NewLiveClassRepository(db)),
		NoticeSvc:    notice.NewService(inmemdb.NewNoticeRepository(db)),
		CircularSvc:  circular.NewService(inmemdb.NewCircularRepository(db)),
		ComplaintSvc: complaint.NewService(inmemdb.NewComplaintRepository(db), mailer, conf),
	})

	t.Cleanup(func() { _ = srv.Close() })

	return &testApp{
		Server:   srv,
		conf:     conf,
		db:       db,
		sessions: sessions,
		mailer:   mailer,
		registry: registry,
		usrRepo:  usrRepo,
	}
}

type httpErr struct {
	Message string            `json:"message"`
	Errors  []core.FieldError `json:"errors,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// getToken opens a session for usr, as a login would.
func getToken(t *testing.T, app *testApp, usr user.User) string {
	t.Helper()
	sess, err := app.sessions.Create(context.Background(), usr.ID)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	token, err := echoapi.GenerateToken(app.conf.SecretKey, app.conf.AppName, sess)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app *testApp, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
