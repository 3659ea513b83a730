package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-guardian/internal/bot"
	"go-guardian/internal/commands"
	"go-guardian/internal/config"
	"go-guardian/internal/database"
	"go-guardian/internal/dispatcher"
	"go-guardian/internal/guard"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
	"go-guardian/internal/watchdog"
)

func main() {
	fmt.Println("Starting Guardian anti-nuke bot")

	cfg := config.LoadOrDefault("config.json")
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}

	if err := initializeLogging(cfg); err != nil {
		fmt.Printf("Fatal: logging init failed: %v\n", err)
		os.Exit(1)
	}

	if err := database.Initialize(cfg.Database.Path); err != nil {
		logging.Error("Database init failed: %v", err)
		os.Exit(1)
	}

	if err := bot.Initialize(cfg.Bot.Token); err != nil {
		logging.Error("Discord session init failed: %v", err)
		os.Exit(1)
	}

	session := bot.GetSession()
	discord := session.GetDiscord()
	db := database.GetDB()

	// Core wiring: registry, cooldowns, attribution, actuation, log sink.
	members := bot.NewMemberProvider(discord)
	trust := guard.NewTrustRegistry(cfg.Bot.OwnerID, members, db)
	cooldowns := guard.NewCooldownTracker(guard.CooldownWindow)
	attributor := guard.NewAuditAttributor(bot.NewAuditSource(discord))

	pool := dispatcher.NewHTTPPool(4)
	pool.Warmup()
	actuator := dispatcher.NewExecutor(pool, cfg.Bot.Token)

	sink := notifier.New(discord, db)
	engine := guard.NewEngine(trust, cooldowns, attributor, actuator, sink)

	var contentGuard *guard.ContentGuard
	if cfg.ContentGuard.Enabled {
		contentGuard = guard.NewContentGuard(
			cfg.ContentGuard.SafeRoles,
			cfg.ContentGuard.SafeIDs,
			members, actuator, sink)
	}

	// Replay persisted state before any event can arrive.
	if err := seedFromDatabase(db, trust, sink); err != nil {
		logging.Warn("State replay failed: %v", err)
	}

	// Handlers must be registered before the connection opens.
	session.SetupEventHandlers(engine, contentGuard)

	if err := session.Connect(); err != nil {
		logging.Error("Discord connection failed: %v", err)
		os.Exit(1)
	}

	if err := commands.Initialize(session, trust, sink); err != nil {
		logging.Error("Command registration failed: %v", err)
		os.Exit(1)
	}

	var wd *watchdog.Watchdog
	if cfg.KeepAlive.Enabled {
		wd = watchdog.New(discord.HeartbeatLatency)
		wd.Start(cfg.KeepAlive.Addr, 30*time.Second)
	}

	logging.Info("Guardian running (owner %s, cooldown %s)", cfg.Bot.OwnerID, guard.CooldownWindow)

	waitForShutdown()

	if wd != nil {
		wd.Stop()
	}
	session.Close()
	database.Close()
	logging.Info("Shutdown complete")
}

func initializeLogging(cfg *config.Config) error {
	level := logging.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	return logging.InitGlobalLogger(level, cfg.Logging.Path)
}

func seedFromDatabase(db *database.Database, trust *guard.TrustRegistry, sink *notifier.Notifier) error {
	trusted, err := db.AllTrusted()
	if err != nil {
		return err
	}
	for _, t := range trusted {
		trust.Seed(t.GuildID, t.UserID)
	}

	bindings, err := db.AllLogChannels()
	if err != nil {
		return err
	}
	for guildID, channelID := range bindings {
		sink.Seed(guildID, channelID)
	}

	logging.Info("Replayed %d trust entries and %d log bindings", len(trusted), len(bindings))
	return nil
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutdown signal received")
}
