package payment

import (
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

// NewStripe builds a provider client. An empty url talks to the real API.
func NewStripe(key string, url string, log stripe.LeveledLoggerInterface) *stripecl.API {
	cfg := &stripe.BackendConfig{
		LeveledLogger: log,
	}
	if url != "" {
		cfg.URL = stripe.String(url)
	}

	b := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)

	strp := &stripecl.API{}
	strp.Init(key, &stripe.Backends{
		API:     b,
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, &stripe.BackendConfig{LeveledLogger: log}),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, &stripe.BackendConfig{LeveledLogger: log}),
	})
	return strp
}

// StripeLogger forwards provider warnings and errors to log and drops the
// per-request debug and info lines.
func StripeLogger(log logrus.FieldLogger) stripe.LeveledLoggerInterface {
	return stripeLog{log: log.WithField("component", "stripe")}
}

type stripeLog struct {
	log logrus.FieldLogger
}

func (l stripeLog) Debugf(format string, v ...interface{}) {}

func (l stripeLog) Infof(format string, v ...interface{}) {}

func (l stripeLog) Warnf(format string, v ...interface{}) {
	l.log.Warnf(format, v...)
}

func (l stripeLog) Errorf(format string, v ...interface{}) {
	l.log.Errorf(format, v...)
}
