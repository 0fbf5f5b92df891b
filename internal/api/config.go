package api

// Config holds HTTP surface settings.
type Config struct {
	// CORSOrigins lists allowed origins; "*" allows any.
	CORSOrigins []string `env:"CORS_ORIGIN" envDefault:"*" envSeparator:","`
}
