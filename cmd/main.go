package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	currencyagent "currency_agent_back"
	"currency_agent_back/pkg/cache"
	"currency_agent_back/pkg/handler"
	"currency_agent_back/pkg/llm"
	"currency_agent_back/pkg/rateclient"
	"currency_agent_back/pkg/repository"
	"currency_agent_back/pkg/service"
	"currency_agent_back/pkg/tools"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.Infoln("Запуск сервера")
	if err := godotenv.Load(); err != nil {
		logrus.Infof("Файл .env не загружен: %s", err)
	}

	if err := InitConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logrus.Fatalf("Ошибка (viper) при чтении конфига: %s", err.Error())
		}
		logrus.Warn("configs/config.yml не найден, используются значения по умолчанию")
	}
	initLogging(viper.GetString("log.level"))

	db := initDB()
	repos := repository.NewRepository(db)

	rateCache, closeCache := initRateCache()
	rates := rateclient.NewCachedFetcher(
		rateclient.NewExchangeRateClient(
			viper.GetString("rates.base_url"),
			os.Getenv("EXCHANGE_RATE_API_KEY"),
			viper.GetDuration("rates.timeout"),
		),
		rateCache,
	)
	if os.Getenv("EXCHANGE_RATE_API_KEY") == "" {
		logrus.Warn("EXCHANGE_RATE_API_KEY не задан, exchangerate-api будет отклонять запросы")
	}

	registry, err := tools.NewConversionRegistry(rates)
	if err != nil {
		logrus.Fatalf("Ошибка при регистрации инструментов: %s", err)
	}

	model, err := llm.New(llm.Config{
		BaseURL: viper.GetString("llm.base_url"),
		Token:   os.Getenv("GROQ_API_KEY"),
		Model:   viper.GetString("llm.model"),
		Timeout: viper.GetDuration("llm.timeout"),
	})
	if err != nil {
		logrus.Fatalf("Ошибка при инициализации LLM: %s", err)
	}
	logrus.WithField("model", viper.GetString("llm.model")).Info("LLM клиент готов")

	services := service.NewService(repos, model, registry, service.AgentOptions{
		Temperature:   viper.GetFloat64("llm.temperature"),
		MaxToolRounds: viper.GetInt("agent.max_tool_rounds"),
	})
	handlers := handler.NewHandler(services, viper.GetStringSlice("server.cors_origins"))

	port := os.Getenv("PORT")
	if port == "" {
		port = viper.GetString("server.port")
	}

	srv := new(currencyagent.Server)
	go func() {
		if err := srv.Run(port, handlers.InitRoute()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Ошибка при запуске сервера: %s", err)
		}
	}()
	logrus.WithField("port", port).Info("Сервер запущен")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Остановка сервера")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Ошибка при остановке сервера: %s", err)
	}
	if err := closeCache(); err != nil {
		logrus.Errorf("Ошибка при закрытии кэша: %s", err)
	}
	if db != nil {
		if err := db.Close(); err != nil {
			logrus.Errorf("Ошибка при закрытии базы данных: %s", err)
		}
	}
}

func initLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Неизвестный уровень логов %q, используется info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	if lvl < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
}

// initDB подключает Postgres для истории конвертаций. Без db.enabled история не пишется.
func initDB() *sqlx.DB {
	if !viper.GetBool("db.enabled") {
		logrus.Info("История конвертаций отключена")
		return nil
	}

	db, err := repository.NewPostgresDB(repository.Config{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   viper.GetString("db.dbname"),
		SSLMode:  viper.GetString("db.sslmode"),
	})
	if err != nil {
		logrus.Fatalf("Ошибка при инициализации базы данных: %s", err.Error())
	}
	if err := repository.Migrate(db); err != nil {
		logrus.Fatalf("Ошибка при создании таблиц: %s", err.Error())
	}
	logrus.Info("База данных подключена")
	return db
}

func initRateCache() (cache.RateCache, func() error) {
	ttl := viper.GetDuration("cache.ttl")

	switch viper.GetString("cache.driver") {
	case "redis":
		redisCache := cache.NewRedisRateCache(cache.RedisConfig{
			Addr:     viper.GetString("cache.redis.addr"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       viper.GetInt("cache.redis.db"),
			Prefix:   viper.GetString("cache.redis.prefix"),
		}, ttl)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			logrus.Warnf("Redis недоступен, курсы будут запрашиваться при ошибках кэша: %s", err)
		}
		logrus.Info("Кэш курсов: redis")
		return redisCache, redisCache.Close
	default:
		logrus.Info("Кэш курсов: memory")
		return cache.NewMemoryRateCache(ttl), func() error { return nil }
	}
}
