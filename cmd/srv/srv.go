package main

import (
	"context"
	"net/http"

	"github.com/BurntSushi/toml"
	"github.com/birdsofspace/spacebirdz-backend/config"
	"github.com/birdsofspace/spacebirdz-backend/internal/client"
	"github.com/birdsofspace/spacebirdz-backend/internal/domain"
	"github.com/birdsofspace/spacebirdz-backend/internal/repository"
	"github.com/birdsofspace/spacebirdz-backend/pkg/kafka"
	"github.com/birdsofspace/spacebirdz-backend/pkg/logger"
	"github.com/birdsofspace/spacebirdz-backend/pkg/pubsub"
	"github.com/birdsofspace/spacebirdz-backend/pkg/router"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xredis"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient xredis.Client
	publisher   pubsub.Publisher
	vaultCaller client.VaultCaller

	userRepo          repository.UserRepository
	questRepo         repository.QuestRepository
	participationRepo repository.ParticipationRepository
	userQuestRepo     repository.UserQuestRepository
	rewardRepo        repository.RewardRepository
	ledgerStateRepo   repository.LedgerStateRepository

	questDomain         domain.QuestDomain
	participationDomain domain.ParticipationDomain
	rewardDomain        domain.RewardDomain
	ledgerDomain        domain.LedgerDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) newDatabase() *gorm.DB {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.db = s.newDatabase()
	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadPublisher() {
	publisher, err := kafka.NewPublisher("spacebirdz-api", []string{s.configs.Kafka.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) loadVaultCaller() {
	rpcUrl := s.configs.Vault.RPCUrl
	if s.configs.Vault.ConfigFile != "" {
		var chainConfig config.ChainConfig
		if _, err := toml.DecodeFile(s.configs.Vault.ConfigFile, &chainConfig); err != nil {
			panic(err)
		}

		if len(chainConfig.Rpcs) == 0 {
			panic("no rpc url in " + s.configs.Vault.ConfigFile)
		}

		rpcUrl = chainConfig.Rpcs[0]
	}

	rpcClient, err := rpc.DialContext(s.ctx, rpcUrl)
	if err != nil {
		panic(err)
	}

	s.vaultCaller = client.NewVaultCaller(rpcClient)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.questRepo = repository.NewQuestRepository()
	s.participationRepo = repository.NewParticipationRepository()
	s.userQuestRepo = repository.NewUserQuestRepository()
	s.rewardRepo = repository.NewRewardRepository()
	s.ledgerStateRepo = repository.NewLedgerStateRepository()
}

func (s *srv) loadDomains() {
	s.questDomain = domain.NewQuestDomain(
		s.questRepo, s.ledgerStateRepo, s.redisClient, s.publisher)
	s.participationDomain = domain.NewParticipationDomain(
		s.questRepo, s.participationRepo, s.userQuestRepo, s.rewardRepo)
	s.rewardDomain = domain.NewRewardDomain(
		s.rewardRepo, s.userRepo, s.ledgerStateRepo, s.vaultCaller, s.publisher)
	s.ledgerDomain = domain.NewLedgerDomain(s.ledgerStateRepo)
}
