package config

import (
	"time"

	"github.com/ardanlabs/conf/v3"
)

// Config is parsed from the environment without a prefix so the variable
// names used by existing deployments (PORT, DB_USER, ...) keep working.
type Config struct {
	conf.Version
	Web    Web
	DB     DB
	Auth   Auth
	Stripe Stripe
	Cors   Cors
	Rate   Rate
}

type Web struct {
	Port            string        `conf:"default:5000,env:PORT"`
	ReadTimeout     time.Duration `conf:"default:5s,env:WEB_READ_TIMEOUT"`
	WriteTimeout    time.Duration `conf:"default:10s,env:WEB_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `conf:"default:120s,env:WEB_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `conf:"default:20s,env:WEB_SHUTDOWN_TIMEOUT"`
}

type DB struct {
	User   string `conf:"env:DB_USER"`
	Pass   string `conf:"env:DB_PASS,mask"`
	Scheme string `conf:"default:mongodb+srv,env:DB_SCHEME"`
	Host   string `conf:"default:cluster0.ylmkwmz.mongodb.net,env:DB_HOST"`
	Name   string `conf:"default:globe_lingual,env:DB_NAME"`
	// URI replaces the URI built from the fields above when set.
	URI            string        `conf:"env:DB_URI,mask"`
	Transactions   bool          `conf:"default:true,env:DB_TRANSACTIONS"`
	ConnectTimeout time.Duration `conf:"default:10s,env:DB_TIMEOUT"`
	PingTimeout    time.Duration `conf:"default:1s,env:DB_PING_TIMEOUT"`
}

type Auth struct {
	Secret   string        `conf:"required,mask,env:SECRET_ACCESS_TOKEN"`
	TokenTTL time.Duration `conf:"default:1h,env:TOKEN_TTL"`
}

type Stripe struct {
	APISecret string `conf:"required,mask,env:PAYMENT_SECRET_KEY"`
	Currency  string `conf:"default:usd,env:PAYMENT_CURRENCY"`
}

type Cors struct {
	Origin string `conf:"default:*,env:CORS_ORIGIN"`
}

type Rate struct {
	Burst    int           `conf:"default:10,env:RATE_BURST"`
	Interval time.Duration `conf:"default:1s,env:RATE_INTERVAL"`
	Expiry   time.Duration `conf:"default:10m,env:RATE_EXPIRY"`
}
