package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Port        string `mapstructure:"port"`
	Env         string `mapstructure:"env"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	MongoURI    string `mapstructure:"mongo_uri"`
	MongoDBName string `mapstructure:"mongo_db_name"`
	JWTSecret   string `mapstructure:"jwt_secret"`

	// AllowSelfFollow permits a user to follow themselves. Off by default;
	// turning it on restores the fully permissive follow path.
	AllowSelfFollow bool `mapstructure:"allow_self_follow"`

	// TrustCommentAuthor accepts a caller-supplied comment author id instead
	// of binding the author to the session identity. Compatibility switch,
	// off by default.
	TrustCommentAuthor bool `mapstructure:"trust_comment_author"`

	CommentPageSize int `mapstructure:"comment_page_size"`
}

// Load reads configuration from a .env file (when present) and environment
// variables, with sane development defaults.
func Load() (*Config, error) {
	// Populate the process environment from .env first; viper reads env vars.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("postgres_dsn", "host=localhost port=5432 dbname=wavely user=postgres password=postgres sslmode=disable")
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_db_name", "wavely")
	v.SetDefault("jwt_secret", "supersecretjwtkey")
	v.SetDefault("allow_self_follow", false)
	v.SetDefault("trust_comment_author", false)
	v.SetDefault("comment_page_size", 5)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("port", "PORT")
	v.BindEnv("env", "ENV")
	v.BindEnv("postgres_dsn", "POSTGRES_DSN")
	v.BindEnv("mongo_uri", "MONGO_URI")
	v.BindEnv("mongo_db_name", "MONGO_DB_NAME")
	v.BindEnv("jwt_secret", "JWT_SECRET")
	v.BindEnv("allow_self_follow", "ALLOW_SELF_FOLLOW")
	v.BindEnv("trust_comment_author", "TRUST_COMMENT_AUTHOR")
	v.BindEnv("comment_page_size", "COMMENT_PAGE_SIZE")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
