package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		want  string
	}{
		{"Box", "box"},
		{"ApplicationWindow", "application_window"},
		{"HTTPBox", "http_box"},
		{"already_snake", "already_snake"},
		{"main_window", "main_window"},
		{"Label2", "label2"},
		{"", ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, SnakeCase(tc.input), "input %q", tc.input)
	}
}

func TestWidget_ParseErrors(t *testing.T) {
	t.Parallel()

	clean := &Widget{Name: "box"}
	assert.False(t, clean.HasParseError())
	assert.Empty(t, clean.ParseErrors())

	nested := &Widget{
		Name: "window",
		Properties: Properties{
			{Type: WidgetProperty{Widget: &Widget{
				Name: "box",
				Properties: Properties{
					{Type: ParseErrorProperty{}},
				},
			}}},
		},
	}
	assert.True(t, nested.HasParseError())
}
