package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/db"
	"github.com/Nixie-Tech-LLC/triton/internal/events"
	"github.com/Nixie-Tech-LLC/triton/internal/redis"
	"github.com/Nixie-Tech-LLC/triton/internal/schedule"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	env := LoadEnvironment()

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrations failed")
	}

	redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)

	store := db.NewStore()

	// publisher is optional: without a broker, schedule changes are simply
	// not pushed and devices rely on polling
	var publisher schedule.Publisher
	if env.MQTTBrokerURL != "" {
		mq, err := events.NewMQTTPublisher(env.MQTTBrokerURL, env.MQTTClientID)
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt connect failed")
		}
		defer mq.Close()
		publisher = mq
	} else {
		log.Warn().Msg("MQTT_BROKER_URL not set, schedule change events disabled")
	}

	service := schedule.NewService(store, store, store, store, store, publisher)

	if env.DefaultTimezone != "" {
		if err := store.SetSystemSetting(schedule.DefaultTimezoneKey, env.DefaultTimezone); err != nil {
			log.Error().Err(err).Msg("could not seed default timezone setting")
		}
	}

	storageSystem := InitStorage(env)

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, store, service, storageSystem)

	log.Info().Str("address", env.ServerAddress).Msg("server listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
