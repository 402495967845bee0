package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database    DatabaseConfigs
	ApiServer   ServerConfigs
	Auth        AuthConfigs
	Question    QuestionConfigs
	Aggregation AggregationConfigs
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
	Host string
	Port string

	// AllowedOrigin is the front-end origin accepted by the CORS layer.
	AllowedOrigin string

	MaxLimit     int
	DefaultLimit int
}

type AuthConfigs struct {
	TokenSecret     string
	TokenExpiration time.Duration
}

type QuestionConfigs struct {
	// CreateCooldown is the minimum delay between two questions of the same
	// owner.
	CreateCooldown time.Duration

	// OpenDuration determines the closing instant of a new question. It is
	// fixed at creation time and never extended.
	OpenDuration time.Duration
}

type AggregationConfigs struct {
	Interval time.Duration
	Timeout  time.Duration
}
