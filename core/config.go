package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address              string
		Host                 string
		DebugHost            string
		ReadTimeout          time.Duration
		WriteTimeout         time.Duration
		ShutdownTimeout      time.Duration
		SessionIdleTimeout   time.Duration
		SessionSweepInterval time.Duration
		CookieSecure         bool
		DisableReqLogs       bool
	}

	Config struct {
		AppName          string
		Env              string // DEV (local; default), TEST, QA, PROD
		Build            string
		Debug            bool
		TestMode         bool
		SecretKey        string
		RollbarToken     string
		SendgridAPIKey   string
		DefaultFromEmail mail.Address
		ComplaintsInbox  string
		SeedDemoData     bool
		SeedUsersFile    string
		Server           ServerConfig
	}
)

// NewConfig loads the configuration from defaults, the optional `config/.env.<env>` file and the environment.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Shule")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", "x8#k2!pz0(ca@9w_u5n$3jq+e7v&m1rb)g6h*t4lyd=fos")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultFromName", "Shule")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("complaintsInbox", "")
	v.SetDefault("seedDemoData", true)
	v.SetDefault("seedUsersFile", "")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverDebugHost", ":4000")
	v.SetDefault("serverReadTimeout", 5*time.Second)
	v.SetDefault("serverWriteTimeout", 5*time.Second)
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("sessionIdleTimeout", 24*time.Hour)
	v.SetDefault("sessionSweepInterval", 24*time.Hour)
	v.SetDefault("cookieSecure", false)
	v.SetDefault("disableReqLogs", false)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("disableReqLogs", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
		v.SetDefault("cookieSecure", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	v.AutomaticEnv()

	return &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		SecretKey:        v.GetString("secretKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		DefaultFromEmail: mail.Address{Name: v.GetString("defaultFromName"), Address: v.GetString("defaultFromEmail")},
		ComplaintsInbox:  v.GetString("complaintsInbox"),
		SeedDemoData:     v.GetBool("seedDemoData"),
		SeedUsersFile:    v.GetString("seedUsersFile"),
		Server: ServerConfig{
			Address:              v.GetString("serverAddress"),
			Host:                 v.GetString("serverHost"),
			DebugHost:            v.GetString("serverDebugHost"),
			ReadTimeout:          v.GetDuration("serverReadTimeout"),
			WriteTimeout:         v.GetDuration("serverWriteTimeout"),
			ShutdownTimeout:      v.GetDuration("serverShutdownTimeout"),
			SessionIdleTimeout:   v.GetDuration("sessionIdleTimeout"),
			SessionSweepInterval: v.GetDuration("sessionSweepInterval"),
			CookieSecure:         v.GetBool("cookieSecure"),
			DisableReqLogs:       v.GetBool("disableReqLogs"),
		},
	}
}

// NewTestConfig returns the configuration used by tests: no request logs, no demo data, short session timeouts.
func NewTestConfig() *Config {
	return &Config{
		AppName:          "Shule",
		Env:              "TEST",
		Build:            "test",
		Debug:            false,
		TestMode:         true,
		SecretKey:        "secret",
		DefaultFromEmail: mail.Address{Name: "Shule", Address: "noreply@localhost"},
		ComplaintsInbox:  "complaints@shule.test",
		Server: ServerConfig{
			Host:                 "localhost",
			ShutdownTimeout:      time.Second,
			SessionIdleTimeout:   time.Hour,
			SessionSweepInterval: time.Hour,
			DisableReqLogs:       true,
		},
	}
}
