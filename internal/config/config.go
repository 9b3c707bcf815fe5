package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	EstatesAPIBaseURL   string // ESTATES_API_BASE_URL, falls back to NEXT_PUBLIC_API_BASE_URL
	RemoteFilter        bool   // let the estates API filter server-side
	PageSize            int
	DatabaseURL         string // admin accounts; empty disables login
	RedisURL            string // sessions and health counters; empty disables both
	SessionSecret       string
	CookieDomain        string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
	SendinblueAPIKey    string // Brevo key for the contact form
	MailFrom            string
	ContactTo           string
	WhatsAppNumber      string
}

// IsProduction reports whether Env is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PAGE_SIZE", 5)
	v.SetDefault("MAIL_FROM", "noreply@inmobiliaria.co")

	return &Config{
		Env:                 firstNonEmpty(v.GetString("APP_ENV"), "development"),
		Port:                firstNonEmpty(v.GetString("PORT"), "8080"),
		EstatesAPIBaseURL:   firstNonEmpty(v.GetString("ESTATES_API_BASE_URL"), v.GetString("NEXT_PUBLIC_API_BASE_URL")),
		RemoteFilter:        v.GetBool("ESTATES_REMOTE_FILTER"),
		PageSize:            v.GetInt("PAGE_SIZE"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		RedisURL:            v.GetString("REDIS_URL"),
		SessionSecret:       v.GetString("SESSION_SECRET"),
		CookieDomain:        v.GetString("COOKIE_DOMAIN"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   v.GetBool("ALLOW_CROSS_SITE_DEV"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
		SendinblueAPIKey:    v.GetString("SENDINBLUE_API_KEY"),
		MailFrom:            v.GetString("MAIL_FROM"),
		ContactTo:           v.GetString("CONTACT_TO"),
		WhatsAppNumber:      v.GetString("WHATSAPP_NUMBER"),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
