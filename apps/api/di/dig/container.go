package dig_container

import (
	"log"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/circular"
	"github.com/trezcool/shule/core/complaint"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/liveclass"
	"github.com/trezcool/shule/core/notice"
	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/core/textbook"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/services/email"
	"github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage/database/inmem"
)

// ServerParams gathers everything the API server is built from.
type ServerParams struct {
	dig.In

	Conf       *core.Config
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	Registerer prometheus.Registerer
	DB         *inmemdb.DB
	Sessions   session.Store

	UserSvc      *user.Service
	HomeworkSvc  *homework.Service
	TextbookSvc  *textbook.Service
	LiveClassSvc *liveclass.Service
	NoticeSvc    *notice.Service
	CircularSvc  *circular.Service
	ComplaintSvc *complaint.Service
}

func newLogger(zl *zap.Logger, conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(zl, conf)
}

func newSessionStore(conf *core.Config) (*inmemdb.SessionStore, session.Store) {
	store := inmemdb.NewSessionStore(conf)
	return store, store
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.TestMode || conf.SendgridAPIKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(&echoapi.Options{
		Conf:         p.Conf,
		Logger:       p.Logger,
		Validate:     p.Validate,
		Translator:   p.Translator,
		Registerer:   p.Registerer,
		Stats:        p.DB,
		Sessions:     p.Sessions,
		UserSvc:      p.UserSvc,
		HomeworkSvc:  p.HomeworkSvc,
		TextbookSvc:  p.TextbookSvc,
		LiveClassSvc: p.LiveClassSvc,
		NoticeSvc:    p.NoticeSvc,
		CircularSvc:  p.CircularSvc,
		ComplaintSvc: p.ComplaintSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(logsvc.NewZapLogger))
	must(c.Provide(newLogger))
	must(c.Provide(inmemdb.Open))
	must(c.Provide(newSessionStore))
	must(c.Provide(newEmailService))
	must(c.Provide(validator.New))
	must(c.Provide(newTranslator))
	must(c.Provide(newRegisterer))

	// repositories
	must(c.Provide(inmemdb.NewUserRepository))
	must(c.Provide(inmemdb.NewHomeworkRepository))
	must(c.Provide(inmemdb.NewTextbookRepository))
	must(c.Provide(inmemdb.NewLiveClassRepository))
	must(c.Provide(inmemdb.NewNoticeRepository))
	must(c.Provide(inmemdb.NewCircularRepository))
	must(c.Provide(inmemdb.NewComplaintRepository))

	// services
	must(c.Provide(user.NewService))
	must(c.Provide(homework.NewService))
	must(c.Provide(textbook.NewService))
	must(c.Provide(liveclass.NewService))
	must(c.Provide(notice.NewService))
	must(c.Provide(circular.NewService))
	must(c.Provide(complaint.NewService))

	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
