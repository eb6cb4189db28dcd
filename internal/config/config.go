package config

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ProjectCfg struct {
	Name   string `mapstructure:"name"`
	NodeID int64  `mapstructure:"nodeId"`
}
type ServerCfg struct {
	Port           string   `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	TrustedProxies []string `mapstructure:"trustedProxies"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	LogSQL       bool   `mapstructure:"logSql"`
}
type RabbitCfg struct {
	URL               string `mapstructure:"url"`
	PrefetchCount     int    `mapstructure:"prefetchCount"`
	RetryDelaySeconds int    `mapstructure:"retryDelaySeconds"`
}
type RedisCfg struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	PoolSize    int           `mapstructure:"poolSize"`
	DialTimeout time.Duration `mapstructure:"dialTimeout"`
}

// SecurityCfg maps admin bearer tokens to their capabilities.
type SecurityCfg struct {
	HookSecret  string              `mapstructure:"hookSecret"`
	AdminTokens map[string][]string `mapstructure:"adminTokens"`
}

// GatewayCfg seeds the runtime settings blob when none has been saved yet.
type GatewayCfg struct {
	DefaultCurrency string `mapstructure:"defaultCurrency"`
	CacheTTLSec     int    `mapstructure:"cacheTtlSec"`
}

type SweeperCfg struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

type TelegramCfg struct {
	BotToken string `mapstructure:"botToken"`
	ChatID   string `mapstructure:"chatId"`
}

type LogCfg struct {
	Dir        string `mapstructure:"dir"`
	Level      string `mapstructure:"level"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
	JSON       bool   `mapstructure:"json"`
}

type Root struct {
	Project  ProjectCfg  `mapstructure:"project"`
	Server   ServerCfg   `mapstructure:"server"`
	Mysql    MysqlCfg    `mapstructure:"mysql"`
	RabbitMQ RabbitCfg   `mapstructure:"rabbitmq"`
	Redis    RedisCfg    `mapstructure:"redis"`
	Security SecurityCfg `mapstructure:"security"`
	Gateway  GatewayCfg  `mapstructure:"gateway"`
	Sweeper  SweeperCfg  `mapstructure:"sweeper"`
	Telegram TelegramCfg `mapstructure:"telegram"`
	Log      LogCfg      `mapstructure:"log"`
}

var C Root

// Init parses -env and loads config/config.<env>.yaml into C.
func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := Load("config/config." + *env + ".yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	C = cfg
}

// Load reads a config file; RAPIDPAY_* environment variables override file values
// (RAPIDPAY_MYSQL_PASSWORD -> mysql.password).
func Load(path string) (Root, error) {
	var out Root

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("RAPIDPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return out, err
	}
	if err := v.Unmarshal(&out); err != nil {
		return out, err
	}
	applyDefaults(&out)
	return out, nil
}

func applyDefaults(c *Root) {
	if strings.TrimSpace(c.Project.Name) == "" {
		c.Project.Name = "rapid-pay"
	}
	if c.Project.NodeID <= 0 {
		c.Project.NodeID = 1
	}
	if c.Redis.DialTimeout <= 0 {
		c.Redis.DialTimeout = 2 * time.Second
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		c.Server.Port = "8080"
	}
	if c.Mysql.Charset == "" {
		c.Mysql.Charset = "utf8mb4"
	}
	if c.Mysql.MaxIdleConns <= 0 {
		c.Mysql.MaxIdleConns = 10
	}
	if c.Mysql.MaxOpenConns <= 0 {
		c.Mysql.MaxOpenConns = 50
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "./logs"
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = 7
	}
	if strings.TrimSpace(c.Gateway.DefaultCurrency) == "" {
		c.Gateway.DefaultCurrency = "BDT"
	}
	if c.Gateway.CacheTTLSec <= 0 {
		c.Gateway.CacheTTLSec = 300
	}
	if c.Sweeper.Interval <= 0 {
		c.Sweeper.Interval = time.Hour
	}
}
