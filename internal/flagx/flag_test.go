package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.yaml", "-a", "http://localhost:8000/api"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.yaml"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-db"},
			allowedFlags: []string{"-db"},
			want:         []string{"-db"},
		},
		{
			name:         "flag followed by another flag has no value",
			args:         []string{"-cache", "-t", "5"},
			allowedFlags: []string{"-cache", "-t"},
			want:         []string{"-cache", "-t", "5"},
		},
		{
			name:         "repeated allowed flag is preserved in order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/etc/sk.yaml", ConfigFile([]string{"-c", "/etc/sk.yaml"}))
	assert.Equal(t, "/etc/sk.json", ConfigFile([]string{"-a", "x", "-config", "/etc/sk.json"}))
	assert.Equal(t, "b.json", ConfigFile([]string{"-c", "a.json", "-config", "b.json"}))
	assert.Empty(t, ConfigFile([]string{"-x", "1"}))
}
