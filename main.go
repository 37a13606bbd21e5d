package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lolbot/bot"
	"lolbot/pkg/config"
	"lolbot/pkg/logger"
	"lolbot/pkg/redis"
	"lolbot/riot"
	"lolbot/riot/assets"
	"lolbot/riot/regions"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// The .env is optional, deployments usually inject the environment.
	godotenv.Load()
	config.LoadEnv()

	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	if config.Discord.Token == "" {
		log.Fatal("DISCORD_TOKEN is not set")
	}
	if config.Riot.ApiKey == "" {
		log.Fatal("RIOT_TOKEN is not set")
	}
	if _, err := regions.Resolve(config.Riot.DefaultServer); err != nil {
		log.Fatalf("invalid default server: %v", err)
	}

	audit, err := logger.CreateLogger()
	if err != nil {
		log.Fatalf("couldn't create the audit logger: %v", err)
	}

	// The Redis-backed champion table survives restarts, a cold start
	// without Redis just fetches from the CDN every time.
	var rdb *redis.RedisClient
	if config.Redis.Host != "" {
		rdb = redis.GetClient()
	}

	ctx := context.Background()
	champions, err := assets.LoadChampions(ctx, rdb)
	if err != nil {
		log.Fatalf("couldn't load the champion table: %v", err)
	}
	log.Infof("loaded %s champion table", champions.Version())

	riotClient := riot.NewClient(config.Riot.ApiKey, regions.Region(config.Riot.Region))

	discordBot, err := bot.New(config.Discord.Token, riotClient, champions, audit, config.Riot.DefaultServer)
	if err != nil {
		log.Fatalf("couldn't start the bot: %v", err)
	}
	log.Info("bot is running, press ctrl+c to exit")
	audit.Infof("session started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("received shutdown signal, shutting down gracefully")
	if err := discordBot.Close(); err != nil {
		log.Errorf("error closing the bot: %v", err)
		audit.Errorf("error closing the bot: %v", err)
	}
	audit.Infof("session ended")

	objectKey := fmt.Sprintf("audit/%s.log", time.Now().Format("2006-01-02T15-04-05"))
	if err := audit.UploadToS3Bucket(objectKey); err != nil {
		log.Errorf("couldn't upload the audit log: %v", err)
	}
	audit.Close()

	if rdb != nil {
		rdb.Close()
	}
}
