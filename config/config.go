package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database     DatabaseConfigs
	ApiServer    ServerConfigs
	SearchServer SearchServerConfigs
	Auth         AuthConfigs
	Session      SessionConfigs
	Redis        RedisConfigs
	Kafka        KafkaConfigs
	Workflow     WorkflowConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type SearchServerConfigs struct {
	ServerConfigs

	RPCName  string
	IndexDir string
}

type AuthConfigs struct {
	TokenSecret  string
	AccessToken  TokenConfigs
	RefreshToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

type WorkflowConfigs struct {
	// DashboardCanJoinLimit caps each can-join state group returned by the
	// dashboard query.
	DashboardCanJoinLimit int

	// DashboardCanStartLimit caps the not-yet-started units returned by the
	// dashboard query.
	DashboardCanStartLimit int
}
