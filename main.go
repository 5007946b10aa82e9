package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"support-agent/dao"
	"support-agent/internal/config"
	"support-agent/model"
	"support-agent/route"
	"support-agent/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	intentConfig, err := loadIntentConfig(cfg.IntentsPath)
	if err != nil {
		log.Fatalf("loading intent config: %v", err)
	}
	log.Printf("loaded %d intents from %s", len(intentConfig.Intents), cfg.IntentsPath)

	db, err := dao.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("opening ticket db: %v", err)
	}
	defer db.Close()

	store := dao.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
	defer store.Close()

	assistant := service.NewAssistant(intentConfig.Intents)
	chatSvc := service.NewChatService(assistant, store, dao.NewTicketRepo(db))

	r := gin.Default()
	route.Register(r, chatSvc)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func loadIntentConfig(path string) (*model.IntentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading intent config: %w", err)
	}

	var cfg model.IntentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing intent config: %w", err)
	}
	if len(cfg.Intents) == 0 {
		return nil, fmt.Errorf("intent config %s defines no intents", path)
	}

	return &cfg, nil
}
