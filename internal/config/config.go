package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	// mysql or sqlite
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"mysql"`

	Cloudinary Cloudinary `envPrefix:"CLOUDINARY_"`
	Admin      Admin      `envPrefix:"ADMIN_"`
	Google     Google     `envPrefix:"GOOGLE_"`
	SMTP       SMTP       `envPrefix:"SMTP_"`
	Session    Session    `envPrefix:"SESSION_"`
}

type Cloudinary struct {
	CloudName   string `env:"CLOUD_NAME"`
	APIKey      string `env:"API_KEY"`
	APISecret   string `env:"API_SECRET"`
	ImageFolder string `env:"IMAGE_FOLDER" envDefault:"kingtech/products"`
	RawFolder   string `env:"RAW_FOLDER" envDefault:"kingtech/files"`
}

type Admin struct {
	// comma-separated list of emails allowed into the admin area
	Emails string `env:"EMAILS"`
	// HTTP Basic fallback, toggled so OAuth-only deployments are not blocked
	BasicAuth      bool   `env:"BASICAUTH" envDefault:"false"`
	Username       string `env:"USERNAME"`
	HashedPassword string `env:"HASHED_PASSWORD"`
}

type Google struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
}

type SMTP struct {
	Host   string `env:"HOST"`
	Port   int    `env:"PORT" envDefault:"587"`
	User   string `env:"USER"`
	Pass   string `env:"PASS"`
	Sender string `env:"SENDER_EMAIL"`
}

type Session struct {
	Secret string `env:"SECRET"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
