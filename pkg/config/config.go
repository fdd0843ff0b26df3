package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Build information. Populated at build-time.
var (
	Name      string = "kornit-chat"
	Version   string
	Branch    string
	Commit    string
	BuildUser string
	GoVersion = runtime.Version()
)

const (
	// EnvPrefix is a prefix to all ENV variables used in this app
	EnvPrefix = "KORNIT_CHAT"
	// APIPrefixV1 URL prefix in API version 1
	APIPrefixV1 = "/api/v1"

	// ##### GENERAL VARIABLES
	// Debug is a flag used to display debug messages
	Debug = false
	// DebugCORS is a flag used to display CORS debug messages
	DebugCORS = false
	// HumanReadableLogs set to true disables JSON formatting of logging
	HumanReadableLogs = false
	// DefaultHost default host for the services
	DefaultHost = "localhost"
	// DefaultPort default port the service is served on
	DefaultPort = "8080"
	// DefaultCorsHosts default cors hosts for local development
	DefaultCorsHosts = "https://localhost:3000 http://localhost:5173"

	// ##### AUTHENTICATION VARIABLES

	// DefaultJWTSecret signs session tokens. Demo-grade, override in real deployments.
	DefaultJWTSecret = "kornit-chat-demo-secret" // #nosec
	// DefaultDemoUsername is the only account the demo login accepts
	DefaultDemoUsername = "admin"
	// DefaultDemoPassword is the matching demo password
	DefaultDemoPassword = "admin"
	// DefaultLoginDelay simulates auth backend latency
	DefaultLoginDelay = "500ms"
	// DefaultSessionTTL is the lifetime of issued session tokens
	DefaultSessionTTL = "24h"

	// ##### BOT VARIABLES

	// DefaultBotMinDelay is the lower bound of the simulated thinking delay
	DefaultBotMinDelay = "700ms"
	// DefaultBotMaxDelay is the upper bound of the simulated thinking delay
	DefaultBotMaxDelay = "1200ms"

	// ##### STORAGE VARIABLES

	// DefaultStoreBackend selects the snapshot backend: file, postgres or none
	DefaultStoreBackend = "file"
	// DefaultStorePath is where the file backend keeps its snapshot blob
	DefaultStorePath = "./data/ai-chat-root.json"

	// ##### DATABASE VARIABLES

	// DefaultDBHost default host for the database connection
	DefaultDBHost = "localhost"
	// DefaultDBPort default port for the database connection
	DefaultDBPort = "5440"
	// DefaultDBName default name for the database connection
	DefaultDBName = "kornit-chat"
	// DefaultDBUser default user for the database connection
	DefaultDBUser = "postgres"
	// DefaultDBPassword default password for the database connection
	DefaultDBPassword = "postgres"
	// DefaultDBSSLMode default ssl mode for the database connection
	DefaultDBSSLMode = "disable"
)

func bindEnvVariable(name string, fallback interface{}) {
	if fallback != "" {
		viper.SetDefault(name, fallback)
	}
	err := viper.BindEnv(name)
	if err != nil {
		// cannot use the logger here, it is configured after SetupEnv
		fmt.Printf("Error binding Env Variable: %v", err)
	}
}

// SetupEnv configures app to read ENV variables
func SetupEnv() {
	// A local .env is optional; absence is not an error.
	_ = godotenv.Load()

	viper.SetEnvPrefix(EnvPrefix)
	// General
	bindEnvVariable("DEBUG", Debug)
	bindEnvVariable("HUMAN_READABLE_LOGS", HumanReadableLogs)
	bindEnvVariable("DEBUG_CORS", DebugCORS)
	bindEnvVariable("HOST", DefaultHost)
	bindEnvVariable("PORT", DefaultPort)
	bindEnvVariable("CORS_HOSTS", DefaultCorsHosts)
	bindEnvVariable("HTTP_REQUEST_TIMEOUT", "60s")
	// Authentication
	bindEnvVariable("JWT_SECRET", DefaultJWTSecret)
	bindEnvVariable("DEMO_USERNAME", DefaultDemoUsername)
	bindEnvVariable("DEMO_PASSWORD", DefaultDemoPassword)
	bindEnvVariable("LOGIN_DELAY", DefaultLoginDelay)
	bindEnvVariable("SESSION_TTL", DefaultSessionTTL)
	// Bot
	bindEnvVariable("BOT_MIN_DELAY", DefaultBotMinDelay)
	bindEnvVariable("BOT_MAX_DELAY", DefaultBotMaxDelay)
	// Storage
	bindEnvVariable("STORE_BACKEND", DefaultStoreBackend)
	bindEnvVariable("STORE_PATH", DefaultStorePath)
	// Database
	bindEnvVariable("DB_HOST", DefaultDBHost)
	bindEnvVariable("DB_PORT", DefaultDBPort)
	bindEnvVariable("DB_NAME", DefaultDBName)
	bindEnvVariable("DB_USER", DefaultDBUser)
	bindEnvVariable("DB_PASS", DefaultDBPassword)
	bindEnvVariable("DB_SSL_MODE", DefaultDBSSLMode)
}

// SetupLogger configures the global logger from the environment.
func SetupLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if viper.GetBool("DEBUG") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if viper.GetBool("HUMAN_READABLE_LOGS") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = log.With().Str("service", Name).Logger()
}

// CorsHosts returns the allowed CORS origins.
func CorsHosts() []string {
	return strings.Fields(viper.GetString("CORS_HOSTS"))
}

// DSN builds the postgres connection string from the environment.
func DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		viper.GetString("DB_HOST"),
		viper.GetString("DB_PORT"),
		viper.GetString("DB_USER"),
		viper.GetString("DB_PASS"),
		viper.GetString("DB_NAME"),
		viper.GetString("DB_SSL_MODE"),
	)
}

// CorsConfig stores default configuration for CORS middleware
func CorsConfig(corsHosts []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   corsHosts,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-Language"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true, // header "Access-Control-Allow-Credentials" is not present if this is set to false
		MaxAge:           300,  // Maximum value not ignored by any of major browsers,
		Debug:            viper.GetBool("DEBUG_CORS"),
	}
}
