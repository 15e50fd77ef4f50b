package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/birdsofspace/spacebirdz-backend/config"
	"golang.org/x/exp/slices"
)

var knownEnvs = []string{"local", "dev", "prod"}

func (s *srv) loadConfig() {
	env := getEnv("ENV", "local")
	if !slices.Contains(knownEnvs, env) {
		panic(fmt.Sprintf("unknown environment %q", env))
	}

	s.configs = &config.Configs{
		Env: env,
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "spacebirdz"),
			Password: getEnv("MYSQL_PASSWORD", "secret"),
			Database: getEnv("MYSQL_DATABASE", "spacebirdz"),
		},
		ApiServer: config.ServerConfigs{
			Host:      getEnv("HOST", "localhost"),
			Port:      getEnv("PORT", "8080"),
			Cert:      getEnv("SERVER_CERT", ""),
			Key:       getEnv("SERVER_KEY", ""),
			AllowCORS: strings.Split(getEnv("ALLOW_CORS", "http://localhost:3000"), ","),
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     getEnv("TOKEN_SECRET", "token-secret"),
				Expiration: getDuration("TOKEN_EXPIRATION", time.Hour*24),
			},
		},
		Quest: config.QuestConfigs{
			MaxQuestsPerDay: getInt("MAX_QUESTS_PER_DAY", 5),
			ListCacheTTL:    getDuration("QUEST_LIST_CACHE_TTL", time.Minute),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr:       getEnv("KAFKA_ADDRESS", "localhost:9092"),
			EventTopic: getEnv("KAFKA_EVENT_TOPIC", "ledger-events"),
		},
		Vault: config.VaultConfigs{
			RPCName:    getEnv("VAULT_RPC_NAME", "vault"),
			RPCUrl:     getEnv("VAULT_RPC_URL", "http://localhost:8545"),
			ConfigFile: getEnv("VAULT_CONFIG_FILE", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		panic(fmt.Sprintf("invalid value of %s: %v", key, err))
	}

	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic(fmt.Sprintf("invalid value of %s: %v", key, err))
	}

	return d
}
