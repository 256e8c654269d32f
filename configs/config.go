package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type App struct {
	Env      string `envconfig:"ENVIRONMENT" default:"development"`
	Name     string `envconfig:"APP_NAME" default:"ALX Travel"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`
	// Public address used to build the payment return URL.
	URL  string `envconfig:"APP_URL" default:"http://localhost"`
	Port string `envconfig:"APP_PORT" default:"8080"`
}

type Database struct {
	DSN string `envconfig:"DATABASE_URL" required:"true"`
}

type JWT struct {
	Secret     string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTTL  time.Duration `envconfig:"JWT_ACCESS_TTL" default:"5m"`
	RefreshTTL time.Duration `envconfig:"JWT_REFRESH_TTL" default:"24h"`
}

type Chapa struct {
	SecretKey string        `envconfig:"CHAPA_SECRET_KEY"`
	BaseURL   string        `envconfig:"CHAPA_BASE_URL"`
	Currency  string        `envconfig:"CHAPA_CURRENCY" default:"ETB"`
	Timeout   time.Duration `envconfig:"CHAPA_TIMEOUT" default:"10s"`
}

type RabbitMQ struct {
	Username string `envconfig:"RABBITMQ_USERNAME" default:"guest"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"guest"`
	Host     string `envconfig:"RABBITMQ_HOST"`
	Port     string `envconfig:"RABBITMQ_PORT" default:"5672"`
	Exchange string `envconfig:"RABBITMQ_EXCHANGE" default:"notifications"`
	Queue    string `envconfig:"RABBITMQ_QUEUE" default:"notifications.q"`
}

type Redis struct {
	URL string `envconfig:"REDIS_URL"`
}

type Email struct {
	BrevoAPIKey string `envconfig:"BREVO_API_KEY"`
	SenderEmail string `envconfig:"EMAIL_SENDER"`
	SenderName  string `envconfig:"EMAIL_SENDER_NAME"`
}

type Cloudinary struct {
	URL    string `envconfig:"CLOUDINARY_URL"`
	Folder string `envconfig:"CLOUDINARY_FOLDER" default:"listings"`
}

type Jobs struct {
	ReconcileSchedule string        `envconfig:"JOBS_RECONCILE_SCHEDULE" default:"*/10 * * * *"`
	PendingAge        time.Duration `envconfig:"JOBS_PENDING_AGE" default:"15m"`
}

type Config struct {
	App        App
	Database   Database
	JWT        JWT
	Chapa      Chapa
	RabbitMQ   RabbitMQ
	Redis      Redis
	Email      Email
	Cloudinary Cloudinary
	Jobs       Jobs
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Msg(".env file not found, reading from system environment variables")
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &c, nil
}

// PaymentReturnBase is the base that verification links are appended to.
func (a App) PaymentReturnBase() string {
	if a.Port == "" {
		return a.URL
	}
	return fmt.Sprintf("%s:%s", a.URL, a.Port)
}

// BrokerURL is empty when no broker host is configured.
func (r RabbitMQ) BrokerURL() string {
	if r.Host == "" {
		return ""
	}
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(r.Username, r.Password),
		Host:   fmt.Sprintf("%s:%s", r.Host, r.Port),
		Path:   "/",
	}
	return u.String()
}

func (e Email) Configured() bool {
	return e.BrevoAPIKey != "" && e.SenderEmail != "" && e.SenderName != ""
}

func (a App) IsDevelopment() bool {
	return a.Env == "development"
}
