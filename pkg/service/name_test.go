package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"foo", "foo"},
		{"path/to/bar", "bar"},
		{"path/to/bar/", "bar"},
		{"path/to/bar///", "bar"},
		{"./uploader", "uploader"},
		{"/srv/apps/reviewer", "reviewer"},
		{"invoice-processing-pipeline/uploader/", "uploader"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := ServiceName(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServiceName_Empty(t *testing.T) {
	for _, source := range []string{"", " ", "\t\n"} {
		_, err := ServiceName(source)
		assert.ErrorIs(t, err, ErrEmptySource, "source %q", source)
	}
}

func TestServiceName_Invalid(t *testing.T) {
	for _, source := range []string{"/", "///", ".", "..", "foo/.."} {
		_, err := ServiceName(source)
		assert.ErrorIs(t, err, ErrInvalidSource, "source %q", source)
	}
}
