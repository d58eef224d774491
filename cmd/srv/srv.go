package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/sessions"
	"github.com/ujdhesa/unisubs/config"
	"github.com/ujdhesa/unisubs/internal/client"
	"github.com/ujdhesa/unisubs/internal/domain"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/migration"
	"github.com/ujdhesa/unisubs/pkg/authenticator"
	"github.com/ujdhesa/unisubs/pkg/kafka"
	"github.com/ujdhesa/unisubs/pkg/logger"
	"github.com/ujdhesa/unisubs/pkg/pubsub"
	"github.com/ujdhesa/unisubs/pkg/router"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"github.com/ujdhesa/unisubs/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo            repository.UserRepository
	teamRepo            repository.TeamRepository
	teamMemberRepo      repository.TeamMemberRepository
	teamVideoRepo       repository.TeamVideoRepository
	projectRepo         repository.ProjectRepository
	workflowRepo        repository.WorkflowRepository
	collabRepo          repository.CollaborationRepository
	collaboratorRepo    repository.CollaboratorRepository
	collabHistoryRepo   repository.CollaborationHistoryRepository
	collabNoteRepo      repository.CollaborationNoteRepository
	collabLangRepo      repository.CollaborationLanguageRepository
	langPrefRepo        repository.TeamLanguagePreferenceRepository
	taskRepo            repository.TaskRepository
	subtitleRepo        repository.SubtitleRepository
	billingRepo         repository.BillingRecordRepository
	narrowingRepo       repository.MembershipNarrowingRepository

	authDomain          domain.AuthDomain
	userDomain          domain.UserDomain
	teamDomain          domain.TeamDomain
	teamVideoDomain     domain.TeamVideoDomain
	collaborationDomain domain.CollaborationDomain
	dashboardDomain     domain.DashboardDomain
	taskDomain          domain.TaskDomain
	billingDomain       domain.BillingDomain

	redisClient  xredis.Client
	publisher    pubsub.Publisher
	subscriber   pubsub.Subscriber
	searchCaller client.SearchCaller

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "unisubs"),
			User:     getEnv("MYSQL_USER", "unisubs"),
			Password: getEnv("MYSQL_PASSWORD", "unisubs"),
			LogLevel: getEnv("DATABASE_LOG_LEVEL", "error"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("API_HOST", "localhost"),
			Port: getEnv("API_PORT", "8080"),
		},
		SearchServer: config.SearchServerConfigs{
			ServerConfigs: config.ServerConfigs{
				Host: getEnv("SEARCH_HOST", "localhost"),
				Port: getEnv("SEARCH_PORT", "8082"),
			},
			RPCName:  "search",
			IndexDir: getEnv("SEARCH_INDEX_DIR", "searchindex"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     getEnv("ACCESS_TOKEN_SECRET", "access-token-secret"),
				Expiration: getEnvAsDuration("ACCESS_TOKEN_DURATION", time.Hour),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Secret:     getEnv("REFRESH_TOKEN_SECRET", "refresh-token-secret"),
				Expiration: getEnvAsDuration("REFRESH_TOKEN_DURATION", 24*time.Hour),
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("SESSION_SECRET", "session-secret"),
			Name:   "session_id",
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", "localhost:9092"),
		},
		Workflow: config.WorkflowConfigs{
			DashboardCanJoinLimit:  getEnvAsInt("DASHBOARD_CAN_JOIN_LIMIT", 10),
			DashboardCanStartLimit: getEnvAsInt("DASHBOARD_CAN_START_LIMIT", 10),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(xcontext.Configs(s.ctx).Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	s.publisher = kafka.NewPublisher(cfg.Env+"-api", []string{cfg.Kafka.Addr})
}

func (s *srv) loadSearchCaller() {
	cfg := xcontext.Configs(s.ctx)
	rpcClient, err := rpc.DialContext(s.ctx, "http://"+cfg.SearchServer.Address())
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithRPCSearchClient(s.ctx, rpcClient)
	s.searchCaller = client.NewSearchCaller(rpcClient)
}

func (s *srv) loadAuth() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithTokenEngine(s.ctx,
		authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken))
	s.ctx = xcontext.WithSessionStore(s.ctx,
		sessions.NewCookieStore([]byte(cfg.Session.Secret)))
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.teamRepo = repository.NewTeamRepository(s.redisClient)
	s.teamMemberRepo = repository.NewTeamMemberRepository()
	s.teamVideoRepo = repository.NewTeamVideoRepository()
	s.projectRepo = repository.NewProjectRepository()
	s.workflowRepo = repository.NewWorkflowRepository()
	s.collabRepo = repository.NewCollaborationRepository()
	s.collaboratorRepo = repository.NewCollaboratorRepository()
	s.collabHistoryRepo = repository.NewCollaborationHistoryRepository()
	s.collabNoteRepo = repository.NewCollaborationNoteRepository()
	s.collabLangRepo = repository.NewCollaborationLanguageRepository()
	s.langPrefRepo = repository.NewTeamLanguagePreferenceRepository()
	s.taskRepo = repository.NewTaskRepository()
	s.subtitleRepo = repository.NewSubtitleRepository()
	s.billingRepo = repository.NewBillingRecordRepository()
	s.narrowingRepo = repository.NewMembershipNarrowingRepository()
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx)
	accessTokenEngine := authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken)
	refreshTokenEngine := authenticator.NewTokenEngine[model.RefreshToken](cfg.Auth.RefreshToken)

	s.authDomain = domain.NewAuthDomain(s.userRepo, accessTokenEngine, refreshTokenEngine)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.teamDomain = domain.NewTeamDomain(
		s.teamRepo, s.teamMemberRepo, s.workflowRepo, s.collabLangRepo, s.collabRepo,
		s.collaboratorRepo, s.teamVideoRepo, s.projectRepo, s.userRepo, s.narrowingRepo,
		s.langPrefRepo)
	s.teamVideoDomain = domain.NewTeamVideoDomain(
		s.teamRepo, s.teamVideoRepo, s.projectRepo, s.workflowRepo, s.collabRepo,
		s.collaboratorRepo, s.collabLangRepo, s.taskRepo, s.teamMemberRepo, s.searchCaller)
	s.collaborationDomain = domain.NewCollaborationDomain(
		s.teamRepo, s.teamMemberRepo, s.teamVideoRepo, s.projectRepo, s.workflowRepo,
		s.collabRepo, s.collaboratorRepo, s.collabHistoryRepo, s.collabNoteRepo,
		s.collabLangRepo, s.userRepo, s.subtitleRepo, s.billingRepo, s.publisher)
	s.dashboardDomain = domain.NewDashboardDomain(
		s.teamRepo, s.teamVideoRepo, s.projectRepo, s.workflowRepo, s.collabRepo,
		s.collaboratorRepo, s.collabLangRepo, s.userRepo, s.teamMemberRepo)
	s.taskDomain = domain.NewTaskDomain(
		s.teamRepo, s.teamMemberRepo, s.teamVideoRepo, s.workflowRepo, s.taskRepo,
		s.langPrefRepo, s.subtitleRepo, s.billingRepo, s.narrowingRepo, s.publisher)
	s.billingDomain = domain.NewBillingDomain(s.teamRepo, s.billingRepo, s.teamMemberRepo)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}

	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}

	return fallback
}
