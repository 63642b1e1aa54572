// internal/pkg/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 聚合了所有服务的基础设施配置。
// 加载顺序：默认值 -> config.yaml（如果存在）-> 环境变量覆盖。
type Config struct {
	HTTP struct {
		Port int `yaml:"port"`
	} `yaml:"http"`
	MySQL struct {
		DSN string `yaml:"dsn"`
	} `yaml:"mysql"`
	Redis struct {
		Addrs string `yaml:"addrs"`
	} `yaml:"redis"`
	Kafka struct {
		Brokers           string `yaml:"brokers"`
		NotificationTopic string `yaml:"notification_topic"`
		ConsumerGroup     string `yaml:"consumer_group"`
	} `yaml:"kafka"`
	Jaeger struct {
		Endpoint string `yaml:"endpoint"`
	} `yaml:"jaeger"`
	Nacos struct {
		ServerAddrs string `yaml:"server_addrs"`
		Namespace   string `yaml:"namespace"`
		Group       string `yaml:"group"`
	} `yaml:"nacos"`
}

// Load 读取配置文件并应用环境变量覆盖。
// path 为空或文件不存在时不报错，按默认值 + 环境变量运行。
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.HTTP.Port = 8080
	cfg.MySQL.DSN = "root:root@tcp(localhost:3306)/storefront?charset=utf8mb4&parseTime=True&loc=Local"
	cfg.Redis.Addrs = "localhost:6379"
	cfg.Kafka.Brokers = "localhost:9092"
	cfg.Kafka.NotificationTopic = "storefront.notifications"
	cfg.Kafka.ConsumerGroup = "push-gateway-group"
	cfg.Jaeger.Endpoint = "http://localhost:14268/api/traces"
	cfg.Nacos.Group = "DEFAULT_GROUP"
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if port, err := strconv.Atoi(GetEnv("HTTP_PORT", "")); err == nil && port > 0 {
		cfg.HTTP.Port = port
	}
	cfg.MySQL.DSN = GetEnv("MYSQL_DSN", cfg.MySQL.DSN)
	cfg.Redis.Addrs = GetEnv("REDIS_ADDRS", cfg.Redis.Addrs)
	cfg.Kafka.Brokers = GetEnv("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.NotificationTopic = GetEnv("NOTIFICATION_TOPIC", cfg.Kafka.NotificationTopic)
	cfg.Jaeger.Endpoint = GetEnv("JAEGER_ENDPOINT", cfg.Jaeger.Endpoint)
	cfg.Nacos.ServerAddrs = GetEnv("NACOS_SERVER_ADDRS", cfg.Nacos.ServerAddrs)
	cfg.Nacos.Namespace = GetEnv("NACOS_NAMESPACE", cfg.Nacos.Namespace)
	cfg.Nacos.Group = GetEnv("NACOS_GROUP", cfg.Nacos.Group)
}

// GetEnv 从环境变量中读取配置，不存在时返回 fallback。
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
