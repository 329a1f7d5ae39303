package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"ophasebot/bot/discord"
	"ophasebot/bot/telegram"
	"ophasebot/impl/auth"
	"ophasebot/impl/core"
	"ophasebot/internal/config"
	"ophasebot/internal/database"
	"ophasebot/internal/http-server/api"
	"ophasebot/internal/ophase"
	"ophasebot/lib/logger"
	"ophasebot/lib/sl"
)

const logFileName = "ophasebot.log"

func main() {
	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	log := logger.SetupLogger(conf.Env, filepath.Join(*logPath, logFileName))
	log.Info("starting ophasebot", slog.String("config", *configPath), slog.String("env", conf.Env))

	var tgBot *telegram.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = telegram.NewTgBot(telegram.Config{
			ApiKey:   conf.Telegram.ApiKey,
			AdminIds: conf.Telegram.AdminIds,
		}, log)
		if err != nil {
			log.Error("telegram bot", sl.Err(err))
			os.Exit(1)
		}
		handler := logger.NewTelegramHandler(log.Handler(), tgBot, logger.ParseLevel(conf.Telegram.MinLevel))
		log = slog.New(handler)
		log.Debug("telegram log forwarding enabled")
	}

	discordBot, err := discord.New(discord.Config(conf.Discord), log)
	if err != nil {
		log.Error("discord bot", sl.Err(err))
		os.Exit(1)
	}

	var opConf *ophase.Config
	if o := conf.OPhaseConfig(); o != nil {
		c := ophase.Config(*o)
		opConf = &c
	} else {
		log.Warn("o_phase block not configured, feature disabled")
	}
	feature := ophase.New(opConf, discordBot, log)
	discordBot.SetFeature(feature)

	mongo := database.NewMongoClient(conf)
	if mongo != nil {
		feature.SetRecorder(mongo)
	}

	if tgBot != nil {
		tgBot.SetStatusProvider(feature)
		if err = tgBot.Start(); err != nil {
			log.Error("telegram bot start", sl.Err(err))
		}
	}

	if conf.Listen.Enabled {
		handler := core.New(feature, log)
		handler.SetAuthService(auth.New(conf.Listen.ApiToken))
		if mongo != nil {
			handler.SetGrantStore(mongo)
		}
		go func() {
			if err := api.New(conf, log, handler); err != nil {
				log.Error("server start", sl.Err(err))
			}
		}()
	}

	if err = discordBot.Start(); err != nil {
		log.Error("discord bot start", sl.Err(err))
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	discordBot.Stop()
	if tgBot != nil {
		tgBot.Stop()
	}
}
