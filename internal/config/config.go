package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/env"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	PoolModeSession = "session"

	defaultNamespace      = "siciap"
	defaultPort           = "5432"
	defaultConnectTimeout = 10 * time.Second
)

// Hosts under these domains are managed providers that only accept TLS.
var managedHostSuffixes = []string{
	"supabase.co",
	"supabase.com",
	"neon.tech",
	"render.com",
	"amazonaws.com",
	"azure.com",
	"digitalocean.com",
	"aivencloud.com",
	"railway.app",
	"elephantsql.com",
}

var localHosts = map[string]bool{
	"":          true,
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
}

// DB is the immutable connection configuration handed to the database manager.
type DB struct {
	Driver         string
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	PoolMode       string
	Path           string
	Namespace      string
	ConnectTimeout time.Duration
}

type portValue string

func (p *portValue) UnmarshalYAML(node *yaml.Node) error {
	*p = portValue(strings.TrimSpace(node.Value))
	return nil
}

type secretsFile struct {
	Postgres struct {
		Host     string    `yaml:"host"`
		Port     portValue `yaml:"port"`
		DBName   string    `yaml:"dbname"`
		User     string    `yaml:"user"`
		Password string    `yaml:"password"`
		SSLMode  string    `yaml:"sslmode"`
	} `yaml:"postgres"`
}

// LoadDB reads the secrets file at path and falls back to DB_* environment
// variables for every value the file does not provide. A missing file is not
// an error.
func LoadDB(path string) (DB, error) {
	var secrets secretsFile

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return DB{}, fmt.Errorf("failed to read secrets file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &secrets); err != nil {
				return DB{}, fmt.Errorf("failed to parse secrets file %s: %w", path, err)
			}
		}
	}

	pg := secrets.Postgres
	cfg := DB{
		Driver:         strings.ToLower(env.GetString("DB_DRIVER", DriverPostgres)),
		Host:           firstNonEmpty(pg.Host, env.GetString("DB_HOST", "localhost")),
		Port:           firstNonEmpty(string(pg.Port), env.GetString("DB_PORT", defaultPort)),
		Name:           firstNonEmpty(pg.DBName, env.GetString("DB_NAME", "postgres")),
		User:           firstNonEmpty(pg.User, env.GetString("DB_USER", "postgres")),
		Password:       firstNonEmpty(pg.Password, env.GetString("DB_PASSWORD", "")),
		SSLMode:        firstNonEmpty(pg.SSLMode, env.GetString("DB_SSLMODE", "")),
		Path:           env.GetString("DB_PATH", "siciap.db"),
		Namespace:      env.GetString("DB_SCHEMA", defaultNamespace),
		ConnectTimeout: env.GetDuration("DB_CONNECT_TIMEOUT", defaultConnectTimeout),
	}

	return cfg.Resolve(), nil
}

// Resolve fills SSL and pool modes from the host when they were not set explicitly.
func (c DB) Resolve() DB {
	if c.Driver == "" {
		c.Driver = DriverPostgres
	}
	if c.Namespace == "" {
		c.Namespace = defaultNamespace
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.SSLMode == "" {
		c.SSLMode = SSLModeFor(c.Host)
	}
	if c.PoolMode == "" && IsPooledHost(c.Host) {
		c.PoolMode = PoolModeSession
	}
	if c.PoolMode == PoolModeSession {
		// Supavisor style poolers serve session mode on 5432 and transaction mode on 6543.
		c.Port = defaultPort
	}
	return c
}

// SSLModeFor returns "require" for managed providers and "disable" otherwise.
func SSLModeFor(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if localHosts[h] {
		return "disable"
	}
	if IsManagedHost(h) {
		return "require"
	}
	return "disable"
}

func IsManagedHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	for _, suffix := range managedHostSuffixes {
		if h == suffix || strings.HasSuffix(h, "."+suffix) {
			return true
		}
	}
	return false
}

func IsPooledHost(host string) bool {
	h := strings.ToLower(host)
	return strings.Contains(h, "pooler.") || strings.Contains(h, "pgbouncer")
}

// DSN renders the driver specific data source name.
func (c DB) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}

	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("connect_timeout", strconv.Itoa(int(c.ConnectTimeout/time.Second)))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Redacted is DSN without the password, for logs.
func (c DB) Redacted() string {
	if c.Driver == DriverSQLite {
		return "sqlite:" + c.Path
	}
	return fmt.Sprintf("postgres://%s@%s/%s?sslmode=%s", c.User, net.JoinHostPort(c.Host, c.Port), c.Name, c.SSLMode)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
