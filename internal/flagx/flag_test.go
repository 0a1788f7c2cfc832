package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-a", ":8080", "-d", "dsn"},
			names: []string{"-a"},
			want:  []string{"-a", ":8080"},
		},
		{
			name:  "equals form",
			args:  []string{"--config=conf.json", "-a", ":8080"},
			names: []string{"--config"},
			want:  []string{"--config=conf.json"},
		},
		{
			name:  "flag without value followed by another flag",
			args:  []string{"-v", "-a", ":8080"},
			names: []string{"-v"},
			want:  []string{"-v"},
		},
		{
			name:  "nothing owned",
			args:  []string{"-a", ":8080"},
			names: []string{"-x"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pick(tt.args, tt.names...))
		})
	}
}
