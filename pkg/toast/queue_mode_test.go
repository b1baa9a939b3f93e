package toast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/toastkit/pkg/effects"
	"github.com/go-drift/toastkit/pkg/toast"
)

func TestParseQueueMode(t *testing.T) {
	tests := []struct {
		in   string
		want toast.QueueMode
	}{
		{"cancel-timeout", toast.CancelTimeout},
		{"CancelTimeout", toast.CancelTimeout},
		{"cancel_timeout", toast.CancelTimeout},
		{" cancel ", toast.CancelTimeout},
		{"wait", toast.Wait},
		{"WAIT", toast.Wait},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := toast.ParseQueueMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := toast.ParseQueueMode("later")
	assert.ErrorIs(t, err, toast.ErrUnknownQueueMode)
}

func TestQueueMode_Text(t *testing.T) {
	text, err := toast.Wait.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "wait", string(text))

	_, err = toast.QueueMode(5).MarshalText()
	assert.ErrorIs(t, err, toast.ErrUnknownQueueMode)

	var m toast.QueueMode
	require.NoError(t, m.UnmarshalText([]byte("cancel-timeout")))
	assert.Equal(t, toast.CancelTimeout, m)
	assert.Equal(t, "QueueMode(5)", toast.QueueMode(5).String())
}

func TestConfig_YAML(t *testing.T) {
	src := `
max_visible_toasts: 3
queue_mode: wait
default_timeout: 2500ms
open_effect:
  name: fade
  duration: 150ms
  curve: ease-out
`
	var cfg toast.Config
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))

	assert.Equal(t, toast.Config{
		MaxVisibleToasts: 3,
		QueueMode:        toast.Wait,
		DefaultTimeout:   2500 * time.Millisecond,
		OpenEffect:       effects.Spec{Name: "fade", Duration: 150 * time.Millisecond, Curve: "ease-out"},
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, toast.DefaultConfig().Validate())

	cfg := toast.DefaultConfig()
	cfg.MaxVisibleToasts = 0
	assert.ErrorIs(t, cfg.Validate(), toast.ErrInvalidMaxVisible)

	cfg = toast.DefaultConfig()
	cfg.QueueMode = 9
	assert.ErrorIs(t, cfg.Validate(), toast.ErrUnknownQueueMode)

	cfg = toast.DefaultConfig()
	cfg.DefaultTimeout = -time.Second
	assert.Error(t, cfg.Validate())
}
