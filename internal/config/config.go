package config

import (
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is populated from the environment. A .env file in the working
// directory is loaded first when present.
type Config struct {
	Port       string `env:"PORT,default=8080"`
	DBDriver   string `env:"DB_DRIVER,default=sqlite3"`
	DBConn     string `env:"DB_CONN,default=file:capsicum.db?_foreign_keys=on"`
	JWTSecret  string `env:"JWT_SECRET,default=capsicum-dev-secret-change-in-prod"`
	GeminiKey  string `env:"GEMINI_API_KEY"`
	Model      string `env:"GEMINI_MODEL,default=gemini-2.5-flash"`
	LogFile    string `env:"LOG_FILE"`
	MCPEnabled bool   `env:"MCP_ENABLED,default=false"`
}

func Load() (Config, error) {
	godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
