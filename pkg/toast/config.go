package toast

import (
	"fmt"
	"time"

	"github.com/go-drift/toastkit/pkg/effects"
)

// Config is the scheduler configuration as it appears in configuration files.
type Config struct {
	MaxVisibleToasts int           `yaml:"max_visible_toasts" koanf:"max_visible_toasts"`
	QueueMode        QueueMode     `yaml:"queue_mode" koanf:"queue_mode"`
	DefaultTimeout   time.Duration `yaml:"default_timeout" koanf:"default_timeout"`
	OpenEffect       effects.Spec  `yaml:"open_effect" koanf:"open_effect"`
	CloseEffect      effects.Spec  `yaml:"close_effect" koanf:"close_effect"`
}

// DefaultConfig returns the configuration a new Scheduler starts with.
func DefaultConfig() Config {
	return Config{
		MaxVisibleToasts: 1,
		QueueMode:        CancelTimeout,
		DefaultTimeout:   DefaultTimeout,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.MaxVisibleToasts <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxVisible, c.MaxVisibleToasts)
	}
	switch c.QueueMode {
	case CancelTimeout, Wait:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownQueueMode, int(c.QueueMode))
	}
	if c.DefaultTimeout < 0 {
		return fmt.Errorf("negative default timeout %s", c.DefaultTimeout)
	}
	return nil
}
