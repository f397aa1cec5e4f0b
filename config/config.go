package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/wfunc/monopoly/game"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	HTTPAddress     string        `mapstructure:"http_address"`
	RPCAddress      string        `mapstructure:"rpc_address"`
	GRPCAddress     string        `mapstructure:"grpc_address"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	IdleRoomTimeout time.Duration `mapstructure:"idle_room_timeout"`
}

type DatabaseConfig struct {
	// Driver selects the snapshot store: memory, postgres, gorm or redis.
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type RedisConfig struct {
	Address     string        `mapstructure:"address"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
	MaxIdle     int           `mapstructure:"max_idle"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

type GameConfig struct {
	game.Rules `mapstructure:",squash"`
	DeckFile   string `mapstructure:"deck_file"`
	// Seed fixes dice and shuffles; 0 seeds from the clock.
	Seed int64 `mapstructure:"seed"`
}

type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

func setDefaults(v *viper.Viper) {
	rules := game.DefaultRules()

	v.SetDefault("server.http_address", ":8080")
	v.SetDefault("server.rpc_address", ":8081")
	v.SetDefault("server.grpc_address", ":8082")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.idle_room_timeout", 30*time.Minute)

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.password", "")
	v.SetDefault("database.postgres.dbname", "monopoly")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("database.redis.key_prefix", "monopoly:")
	v.SetDefault("database.redis.max_idle", 10)
	v.SetDefault("database.redis.idle_timeout", 240*time.Second)

	v.SetDefault("game.starting_money", rules.StartingMoney)
	v.SetDefault("game.go_bonus", rules.GoBonus)
	v.SetDefault("game.bail", rules.Bail)
	v.SetDefault("game.cpu_buy_reserve", rules.CPUBuyReserve)
	v.SetDefault("game.cpu_build_reserve", rules.CPUBuildReserve)
	v.SetDefault("game.deck_file", "")
	v.SetDefault("game.seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)

	v.SetDefault("metrics.namespace", "monopoly")
}

// LoadConfig reads config.yaml from path, then .env, then the environment
// (SERVER_HTTP_ADDRESS overrides server.http_address). A missing file is
// not an error; every key has a default.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
