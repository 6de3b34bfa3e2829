package timelock

import (
	"time"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/gconf"
)

const packageName = "timelock"

// Configuration of the escrow.
type Configuration struct {
	Metadata *paylock.Metadata `json:"metadata"`
	// CancelNotice is the number of seconds before the unlock time after
	// which a payment can no longer be cancelled.
	CancelNotice int64 `json:"cancel_notice"`
	// Ticker, if set, is the only currency that can be committed.
	Ticker string `json:"ticker,omitempty"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration requires a one day notice and accepts any currency.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Metadata:     &paylock.Metadata{Schema: 1},
		CancelNotice: int64(24 * time.Hour / time.Second),
	}
}

func (c *Configuration) Marshal() ([]byte, error) {
	return paylock.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, c)
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if c.CancelNotice < 0 {
		errs = errors.Append(errs, errors.Field("CancelNotice", errors.ErrInput, "must not be negative"))
	}
	if c.Ticker != "" && !coin.IsCC(c.Ticker) {
		errs = errors.Append(errs, errors.Field("Ticker", errors.ErrCurrency, "invalid ticker %q", c.Ticker))
	}
	return errs
}

// Notice returns the cancellation notice as a duration.
func (c *Configuration) Notice() time.Duration {
	return time.Duration(c.CancelNotice) * time.Second
}

// loadConf returns the stored configuration, or the default one if none was
// ever saved.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var c Configuration
	switch err := gconf.Load(db, packageName, &c); {
	case err == nil:
		return &c, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}
