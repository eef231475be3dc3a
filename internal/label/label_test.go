package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Default(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	got, err := r.Render(Data{Action: "build", Args: []string{"build", "--release", "--bin", "app"}})
	require.NoError(t, err)
	assert.Equal(t, "cargo build --release --bin app", got)
}

func TestRender_CustomTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     Data
		want     string
	}{
		{
			name:     "sprig helpers",
			template: `{{ .Action | upper }}: {{ .Package | default "workspace" }}`,
			data:     Data{Action: "test"},
			want:     "TEST: workspace",
		},
		{
			name:     "package and target",
			template: `{{ .Package }}/{{ .Target }} ({{ .Profile }})`,
			data:     Data{Package: "core", Target: "core", Profile: "release"},
			want:     "core/core (release)",
		},
		{
			name:     "pipe join",
			template: `cargo {{ .Args | join " " }}`,
			data:     Data{Args: []string{"run", "--example", "demo"}},
			want:     "cargo run --example demo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.template)
			require.NoError(t, err)

			got, err := r.Render(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_InvalidTemplate(t *testing.T) {
	_, err := New("{{ .Action ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse label template")
}

func TestRender_UnknownField(t *testing.T) {
	r, err := New("{{ .Nope }}")
	require.NoError(t, err)

	_, err = r.Render(Data{})
	require.Error(t, err)
}
