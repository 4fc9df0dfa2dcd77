package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/smartschedule/smartschedule/config"
	"github.com/smartschedule/smartschedule/internal/domain/repository"
	"github.com/smartschedule/smartschedule/pkg/helpers"
	"github.com/smartschedule/smartschedule/pkg/llm"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire themselves from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client

	users    repository.UserRepository
	sessions repository.SessionRepository
	events   repository.EventRepository

	jwtManager *helpers.JWTManager
	chatModel  llm.ChatModel
)

func SetConfig(c *config.Config)                   { cfg = c }
func GetConfig() *config.Config                    { return cfg }
func SetLogger(l *logrus.Logger)                   { logger = l }
func GetLogger() *logrus.Logger                    { return logger }
func SetRedis(r *redis.Client)                     { redisClient = r }
func GetRedis() *redis.Client                      { return redisClient }
func SetUsers(r repository.UserRepository)         { users = r }
func GetUsers() repository.UserRepository          { return users }
func SetSessions(r repository.SessionRepository)   { sessions = r }
func GetSessions() repository.SessionRepository    { return sessions }
func SetEvents(r repository.EventRepository)       { events = r }
func GetEvents() repository.EventRepository        { return events }
func SetJWT(m *helpers.JWTManager)                 { jwtManager = m }
func GetJWT() *helpers.JWTManager                  { return jwtManager }
func SetChatModel(m llm.ChatModel)                 { chatModel = m }
func GetChatModel() llm.ChatModel                  { return chatModel }
