package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env-required:"true" env-default:"production"`
	PGSQL      PQSQL      `yaml:"pgsql" env-required:"true"`
	Redis      Redis      `yaml:"redis"`
	HTTPServer HTTPServer `yaml:"http_server" env-required:"true"`
	Assets     Assets     `yaml:"assets" env-required:"true"`
	MinIO      MinIO      `yaml:"minio"`
	JWTSecret  string     `yaml:"jwt_secret" env-required:"true" env-default:"super_secret_key"`
}

type HTTPServer struct {
	Address string `yaml:"address" env-required:"true" env-default:"localhost:8080"`
	// PublicBaseURL is the externally reachable base URL minted into
	// thumbnail references, e.g. "http://localhost:8080".
	PublicBaseURL string `yaml:"public_base_url" env-required:"true" env-default:"http://localhost:8080"`
}

type PQSQL struct {
	Host     string `yaml:"host" env-required:"true" env-default:"localhost"`
	Port     string `yaml:"port" env-required:"true" env-default:"5432"`
	User     string `yaml:"user" env-required:"true" env-default:"postgres"`
	Password string `yaml:"password" env-required:"true" env-default:"password"`
	DBName   string `yaml:"dbname" env-required:"true" env-default:"videos_db"`
	SSLMode  string `yaml:"sslmode" env-required:"true" env-default:"disable"`
}

type Redis struct {
	Address  string `yaml:"address" env-default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" env-default:"0"`
}

// Assets selects the thumbnail storage strategy. Exactly one strategy is
// active per deployment; references minted under one strategy are not
// resolvable under another.
type Assets struct {
	// Strategy is one of "filesystem", "inline", "memory", "object".
	Strategy string `yaml:"strategy" env-required:"true" env-default:"filesystem"`
	// Root is the directory thumbnail files are written to. Only used by
	// the filesystem strategy.
	Root string `yaml:"root" env-default:"./assets"`
	// MaxUploadBytes caps thumbnail upload size. Uploads above this are
	// rejected before any bytes are persisted.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env-default:"10485760"`
}

type MinIO struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	BucketName      string `yaml:"bucket_name" env-default:"thumbnails"`
	UseSSL          bool   `yaml:"use_ssl"`
}

func MustLoad() *Config {
	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to config file")
		flag.Parse()
		configPath = *flags

		if configPath == "" {
			log.Fatal("config path must be provided")
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist at path: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("failed to read config: %s", err)
	}

	return &cfg
}
