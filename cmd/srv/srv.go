package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/veleo-lab/backend/config"
	"github.com/veleo-lab/backend/internal/client"
	"github.com/veleo-lab/backend/internal/common"
	"github.com/veleo-lab/backend/internal/domain"
	"github.com/veleo-lab/backend/internal/repository"
	"github.com/veleo-lab/backend/pkg/api/coingecko"
	"github.com/veleo-lab/backend/pkg/authenticator"
	"github.com/veleo-lab/backend/pkg/logger"
	"github.com/veleo-lab/backend/pkg/router"
	"github.com/veleo-lab/backend/pkg/storage"
	"github.com/veleo-lab/backend/pkg/xcontext"
	"github.com/veleo-lab/backend/pkg/xredis"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	userRepo      repository.UserRepository
	eventRepo     repository.EventRepository
	claimCodeRepo repository.ClaimCodeRepository
	badgeRepo     repository.BadgeRepository

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	eventDomain     domain.EventDomain
	claimCodeDomain domain.ClaimCodeDomain
	badgeDomain     domain.BadgeDomain
	statisticDomain domain.StatisticDomain
	priceDomain     domain.PriceDomain
	fileDomain      domain.FileDomain

	redisClient xredis.Client
	aleoCaller  client.AleoCaller
	fileStorage storage.Storage

	router *router.Router
	server *http.Server

	configs config.Configs
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (s *srv) loadConfig() {
	aleo, err := config.LoadAleoConfigs(getEnv("ALEO_CONFIG", "./aleo.toml"))
	if err != nil {
		aleo = config.AleoConfigs{
			ProgramID:  getEnv("ALEO_PROGRAM_ID", "veleo_badges.aleo"),
			ChainID:    getEnv("ALEO_CHAIN_ID", "testnetbeta"),
			BridgeURL:  getEnv("ALEO_BRIDGE_URL", "http://localhost:4040"),
			Fee:        1000000,
			FeePrivate: false,
		}
	}

	s.configs = config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "veleo"),
			Password: getEnv("MYSQL_PASSWORD", "veleo"),
			Database: getEnv("MYSQL_DATABASE", "veleo"),
		},
		ApiServer: config.ServerConfigs{
			Host:           getEnv("HOST", "localhost"),
			Port:           getEnv("PORT", "8080"),
			Cert:           getEnv("SERVER_CERT", "cert"),
			Key:            getEnv("SERVER_KEY", "key"),
			AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
			DefaultLimit:   getEnvInt("DEFAULT_LIMIT", 10),
			MaxLimit:       getEnvInt("MAX_LIMIT", 50),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvDuration("ACCESS_TOKEN_DURATION", time.Hour*24),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: getEnvDuration("REFRESH_TOKEN_DURATION", time.Hour*24*30),
			},
			Google: config.OAuth2Config{
				Name:         "google",
				Issuer:       "https://accounts.google.com",
				ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
				ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
				IDField:      "email",
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("SESSION_SECRET", "session_secret"),
			Name:   "auth_session",
		},
		Storage: storage.S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", "access_key"),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", "secret_key"),
			Bucket:         getEnv("STORAGE_BUCKET", "veleo"),
			SSLDisabled:    getEnv("STORAGE_SSL_DISABLE", "true") == "true",
		},
		File: config.FileConfigs{
			MaxSize: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 2)) << 20,
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Aleo: aleo,
		Price: config.PriceConfigs{
			Endpoint: getEnv("PRICE_ENDPOINT", "https://api.coingecko.com/api/v3"),
			CacheTTL: getEnvDuration("PRICE_CACHE_TTL", 5*time.Minute),
		},
		QR: config.QRConfigs{
			Endpoint:    getEnv("QR_ENDPOINT", "https://api.qrserver.com/v1/create-qr-code/"),
			DefaultSize: getEnvInt("QR_DEFAULT_SIZE", 300),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), s.configs)
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(s.configs.LogLevel)))
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadStorage() {
	s.fileStorage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadEndpoint() {
	s.aleoCaller = client.NewAleoCaller(s.configs.Aleo.BridgeURL)

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(s.configs.Auth.TokenSecret))
	s.ctx = xcontext.WithSessionStore(s.ctx, sessions.NewCookieStore([]byte(s.configs.Session.Secret)))
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.eventRepo = repository.NewEventRepository()
	s.claimCodeRepo = repository.NewClaimCodeRepository()
	s.badgeRepo = repository.NewBadgeRepository()
}

func (s *srv) loadDomains() {
	var oauth2Services []authenticator.IOAuth2Service
	if s.configs.Auth.Google.ClientID != "" {
		google, err := authenticator.NewOAuth2Service(s.ctx, s.configs.Auth.Google)
		if err != nil {
			panic(err)
		}

		oauth2Services = append(oauth2Services, google)
	}

	roleVerifier := common.NewRoleVerifier(s.userRepo)

	s.authDomain = domain.NewAuthDomain(s.userRepo, oauth2Services)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.eventDomain = domain.NewEventDomain(s.eventRepo, s.badgeRepo, roleVerifier)
	s.claimCodeDomain = domain.NewClaimCodeDomain(
		s.claimCodeRepo, s.eventRepo, s.badgeRepo, s.userRepo,
		roleVerifier, s.aleoCaller, s.redisClient,
	)
	s.badgeDomain = domain.NewBadgeDomain(s.badgeRepo, s.eventRepo)
	s.statisticDomain = domain.NewStatisticDomain(s.userRepo, s.redisClient)
	s.priceDomain = domain.NewPriceDomain(coingecko.New(s.configs.Price.Endpoint), s.redisClient)
	s.fileDomain = domain.NewFileDomain(s.fileStorage, roleVerifier)
}
