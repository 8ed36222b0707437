package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/veleo-lab/backend/pkg/storage"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Storage   storage.S3Configs
	File      FileConfigs
	Redis     RedisConfigs
	Aleo      AleoConfigs
	Price     PriceConfigs
	QR        QRConfigs
	LogLevel  string
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
	Host           string
	Port           string
	Cert           string
	Key            string
	AllowedOrigins []string
	DefaultLimit   int
	MaxLimit       int
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf(":%s", s.Port)
}

type AuthConfigs struct {
	TokenSecret  string
	AccessToken  TokenConfigs
	RefreshToken TokenConfigs

	Google OAuth2Config
}

type OAuth2Config struct {
	Name         string
	Issuer       string
	ClientID     string
	ClientSecret string
	IDField      string
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type FileConfigs struct {
	MaxSize int64
}

type RedisConfigs struct {
	Addr string
}

// AleoConfigs describes the chain the badge program is deployed on. In
// production it is loaded from a TOML file so the program can be repointed
// without a rebuild.
type AleoConfigs struct {
	ProgramID  string `toml:"program_id"`
	ChainID    string `toml:"chain_id"`
	BridgeURL  string `toml:"bridge_url"`
	Fee        int64  `toml:"fee"`
	FeePrivate bool   `toml:"fee_private"`
}

// LoadAleoConfigs reads chain parameters from the TOML file at path.
func LoadAleoConfigs(path string) (AleoConfigs, error) {
	var cfg AleoConfigs
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return AleoConfigs{}, err
	}

	return cfg, nil
}

type PriceConfigs struct {
	Endpoint string
	CacheTTL time.Duration
}

type QRConfigs struct {
	Endpoint    string
	DefaultSize int
}
