package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/gcal-booking-agent/internal/adapters/in/http"
	"github.com/suchimauz/gcal-booking-agent/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/gcal-booking-agent/internal/adapters/out/cache"
	"github.com/suchimauz/gcal-booking-agent/internal/adapters/out/google"
	"github.com/suchimauz/gcal-booking-agent/internal/adapters/out/logger"
	"github.com/suchimauz/gcal-booking-agent/internal/config"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/out"
	"github.com/suchimauz/gcal-booking-agent/internal/core/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Дополнительное логирование для разработки
	if cfg.IsLocal() {
		log.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"google": map[string]string{
					"calendarId":      cfg.Google.CalendarID,
					"credentialsFile": cfg.Google.CredentialsFile,
				},
				"rabbitmq": map[string]interface{}{
					"enabled": cfg.RabbitMQ.Enabled,
					"url":     cfg.RabbitMQ.URL,
					"queue":   cfg.RabbitMQ.EventQueue,
				},
				"cache": map[string]interface{}{
					"enabled":       cfg.Cache.Enabled,
					"sessions_size": cfg.Cache.SessionsSize,
				},
			},
		})
	}

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Календарь может не подняться, если не настроены учетные данные.
	// Тогда работаем в деградированном режиме: каждый запрос получает
	// фиксированный ответ об ошибке конфигурации
	var calendarPort out.CalendarPort
	calendarAdapter, err := google.NewCalendarAdapter(ctx, cfg, mainLogger.WithModule("CalendarAdapter"))
	if err != nil {
		log.Error("app.calendar.init_failed", out.LogFields{
			"error": err.Error(),
		})
	} else {
		calendarPort = calendarAdapter
	}

	cacheAdapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
	if err != nil {
		log.Error("app.cache.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Инициализация сервиса
	chatService := services.NewChatAgentService(
		calendarPort,
		cacheAdapter,
		cfg,
		mainLogger,
	)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := http.NewChatController(
		chatService,
		cfg,
		mainLogger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewCalendarEventListener(
			chatService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
