package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Identity and authentication are owned by the
// upstream gateway, so the only required values are the listen port and the
// database connection string.
type Config struct {
	Env        string // application environment (e.g. "dev", "prod")
	Port       string // HTTP port to listen on
	DBURL      string // MySQL DSN, e.g. user:pass@tcp(host:3306)/venues
	UsersMSURL string // base URL of the users microservice (optional)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:        getenv("APP_ENV", "dev"),  // environment (dev/test/prod)
		Port:       must("APP_PORT"),          // port to bind the HTTP server
		DBURL:      must("DB_URL"),            // database connection string
		UsersMSURL: os.Getenv("USERS_MS_URL"), // users-ms base URL (empty disables the lookup)
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
