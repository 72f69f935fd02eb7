package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/services/logger"
)

func main() {
	conf := core.NewConfig()
	zl, err := logsvc.NewZapLogger(conf)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()
	logger := logsvc.NewRollbarLogger(zl, conf)

	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	file := conf.SeedUsersFile
	if file == "" {
		file = defaultUsersFile
	}

	// start CLI
	cli := commandLine{
		file:       file,
		validate:   validate,
		translator: translator,
		out:        os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			var vErr *core.ValidationError
			if errors.As(err, &vErr) {
				for _, fe := range vErr.Fields {
					fmt.Printf("  %s: %s\n", fe.Field, fe.Error)
				}
			}
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		_ = zl.Sync()
		os.Exit(1)
	}
}
