package main

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

func InitConfig() error {
	setDefaults()

	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// значения по умолчанию совпадают с configs/config.yml, чтобы сервис поднимался и без файла
func setDefaults() {
	viper.SetDefault("server.port", "5001")
	viper.SetDefault("server.cors_origins", []string{"*"})
	viper.SetDefault("log.level", "info")

	viper.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("llm.model", "llama-3.3-70b-versatile")
	viper.SetDefault("llm.temperature", 0.0)
	viper.SetDefault("llm.timeout", 60*time.Second)
	viper.SetDefault("agent.max_tool_rounds", 2)

	viper.SetDefault("rates.base_url", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("rates.timeout", 10*time.Second)

	viper.SetDefault("cache.driver", "memory")
	viper.SetDefault("cache.ttl", 10*time.Minute)
	viper.SetDefault("cache.redis.addr", "localhost:6379")
	viper.SetDefault("cache.redis.db", 0)
	viper.SetDefault("cache.redis.prefix", "rates:")

	viper.SetDefault("db.enabled", false)
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.sslmode", "disable")
}
