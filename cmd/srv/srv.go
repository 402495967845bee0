package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/enqueter/backend/api"
	"github.com/enqueter/backend/config"
	"github.com/enqueter/backend/internal/domain"
	"github.com/enqueter/backend/internal/domain/statistic"
	"github.com/enqueter/backend/internal/middleware"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/logger"
	"github.com/enqueter/backend/pkg/token"
	"github.com/enqueter/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo         repository.UserRepository
	questionRepo     repository.QuestionRepository
	answerRepo       repository.AnswerRepository
	ledgerRepo       repository.LedgerRepository
	statsRepo        repository.StatsRepository
	notificationRepo repository.NotificationRepository
	relationshipRepo repository.RelationshipRepository

	userDomain         domain.UserDomain
	questionDomain     domain.QuestionDomain
	answerDomain       domain.AnswerDomain
	statisticDomain    domain.StatisticDomain
	followerDomain     domain.FollowerDomain
	notificationDomain domain.NotificationDomain

	aggregator statistic.Aggregator

	router *api.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "enqueter"),
			User:     getEnv("MYSQL_USER", "enqueter"),
			Password: getEnv("MYSQL_PASSWORD", "enqueter"),
		},
		ApiServer: config.ServerConfigs{
			Host:          getEnv("HOST", "localhost"),
			Port:          getEnv("PORT", "8080"),
			AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
			MaxLimit:      50,
			DefaultLimit:  10,
		},
		Auth: config.AuthConfigs{
			TokenSecret:     getEnv("TOKEN_SECRET", "token-secret"),
			TokenExpiration: getDuration("TOKEN_EXPIRATION", time.Hour*24),
		},
		Question: config.QuestionConfigs{
			CreateCooldown: getDuration("QUESTION_CREATE_COOLDOWN", 3*time.Minute),
			OpenDuration:   getDuration("QUESTION_OPEN_DURATION", 7*24*time.Hour),
		},
		Aggregation: config.AggregationConfigs{
			Interval: getDuration("AGGREGATION_INTERVAL", 5*time.Minute),
			Timeout:  getDuration("AGGREGATION_TIMEOUT", time.Minute),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	databaseCfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(databaseCfg.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.questionRepo = repository.NewQuestionRepository()
	s.answerRepo = repository.NewAnswerRepository()
	s.ledgerRepo = repository.NewLedgerRepository()
	s.statsRepo = repository.NewStatsRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.relationshipRepo = repository.NewRelationshipRepository()
}

func (s *srv) loadDomains() {
	s.userDomain = domain.NewUserDomain(s.userRepo, s.relationshipRepo)
	s.questionDomain = domain.NewQuestionDomain(
		s.questionRepo, s.answerRepo, s.userRepo, s.notificationRepo)
	s.answerDomain = domain.NewAnswerDomain(
		s.questionRepo, s.answerRepo, s.ledgerRepo, s.notificationRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.statsRepo, s.userRepo)
	s.followerDomain = domain.NewFollowerDomain(
		s.userRepo, s.relationshipRepo, s.notificationRepo)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo)

	s.aggregator = statistic.NewAggregator(s.ledgerRepo, s.questionRepo, s.statsRepo)
}

func (s *srv) loadRouter() {
	router := api.NewRouter(s.ctx)
	authVerifier := middleware.NewAuthVerifier(token.NewEngine(xcontext.Configs(s.ctx).Auth))
	router.Before(authVerifier.Middleware())

	// Public API. The verifier still resolves an optional bearer token so
	// profile responses can include is_following.
	publicRouter := router.Branch()
	{
		api.GET(publicRouter, "/getQuestion", s.questionDomain.Get)
		api.GET(publicRouter, "/getQuestions", s.questionDomain.GetList)
		api.GET(publicRouter, "/getUserQuestions", s.questionDomain.GetListByUser)
		api.GET(publicRouter, "/getUser", s.userDomain.Get)
		api.GET(publicRouter, "/getPointStats", s.statisticDomain.GetPointStats)
		api.GET(publicRouter, "/getResponseStats", s.statisticDomain.GetResponseStats)
		api.GET(publicRouter, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)
	}

	// These following APIs need authentication.
	authRouter := router.Branch()
	authRouter.Before(middleware.Authenticate)
	{
		api.GET(authRouter, "/getMe", s.userDomain.GetMe)
		api.POST(authRouter, "/createQuestion", s.questionDomain.Create)
		api.POST(authRouter, "/deleteQuestion", s.questionDomain.Delete)
		api.POST(authRouter, "/submitAnswer", s.answerDomain.Submit)
		api.POST(authRouter, "/follow", s.followerDomain.Follow)
		api.POST(authRouter, "/unfollow", s.followerDomain.Unfollow)
		api.GET(authRouter, "/getNotifications", s.notificationDomain.GetList)
		api.POST(authRouter, "/watchNotifications", s.notificationDomain.WatchAll)
	}

	s.router = router
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}
