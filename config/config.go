package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Quest     QuestConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Vault     VaultConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host      string
	Port      string
	Cert      string
	Key       string
	AllowCORS []string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration time.Duration
}

type QuestConfigs struct {
	// MaxQuestsPerDay is the number of quests the admin is allowed to create
	// within one calendar day.
	MaxQuestsPerDay int

	ListCacheTTL time.Duration
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr       string
	EventTopic string
}

type VaultConfigs struct {
	// RPCName is the namespace prefix of the vault service JSON-RPC methods.
	RPCName string
	RPCUrl  string

	ConfigFile string
}

type ChainConfig struct {
	Chain string   `toml:"chain"`
	Rpcs  []string `toml:"rpcs"`
}
