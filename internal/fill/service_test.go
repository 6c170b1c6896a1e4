package fill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskworks/draw2977/internal/form"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestService_Fill_InputChecks(t *testing.T) {
	dir := t.TempDir()
	service := NewService(1024 * 1024)

	template := writeFile(t, dir, "template.pdf", "%PDF-1.7 placeholder")
	input := writeFile(t, dir, "input.json", `{}`)
	output := filepath.Join(dir, "out.pdf")

	tests := []struct {
		name        string
		req         FillRequest
		errContains string
	}{
		{
			name:        "empty template path",
			req:         FillRequest{InputPath: input, OutputPath: output},
			errContains: "template path cannot be empty",
		},
		{
			name:        "missing template",
			req:         FillRequest{TemplatePath: filepath.Join(dir, "nope.pdf"), InputPath: input, OutputPath: output},
			errContains: "template not found",
		},
		{
			name:        "empty input path",
			req:         FillRequest{TemplatePath: template, OutputPath: output},
			errContains: "input record path cannot be empty",
		},
		{
			name:        "missing input",
			req:         FillRequest{TemplatePath: template, InputPath: filepath.Join(dir, "nope.json"), OutputPath: output},
			errContains: "input record not found",
		},
		{
			name:        "template is a directory",
			req:         FillRequest{TemplatePath: dir, InputPath: input, OutputPath: output},
			errContains: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.Fill(tt.req)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestService_Fill_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	service := NewService(8)

	template := writeFile(t, dir, "template.pdf", "%PDF-1.7 well over eight bytes")
	input := writeFile(t, dir, "input.json", `{}`)

	_, err := service.Fill(FillRequest{
		TemplatePath: template,
		InputPath:    input,
		OutputPath:   filepath.Join(dir, "out.pdf"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestService_Fill_RejectsNonPDFTemplate(t *testing.T) {
	dir := t.TempDir()
	service := NewService(1024 * 1024)

	template := writeFile(t, dir, "template.pdf", "not a pdf")
	input := writeFile(t, dir, "input.json", `{"mission_task_and_description": "Range day"}`)

	_, err := service.Fill(FillRequest{
		TemplatePath: template,
		InputPath:    input,
		OutputPath:   filepath.Join(dir, "out.pdf"),
		Strategy:     form.StrategyAuto,
	})
	assert.Error(t, err)

	// A fatal error leaves no output behind.
	_, statErr := os.Stat(filepath.Join(dir, "out.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestService_Inspect_InputChecks(t *testing.T) {
	dir := t.TempDir()
	service := NewService(1024 * 1024)

	_, err := service.Inspect(InspectRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template path cannot be empty")

	_, err = service.Inspect(InspectRequest{TemplatePath: filepath.Join(dir, "nope.pdf")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
}

func TestService_Validate_InputChecks(t *testing.T) {
	dir := t.TempDir()
	service := NewService(1024 * 1024)

	_, err := service.Validate(ValidateRequest{Strategy: form.StrategyAuto})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template path cannot be empty")

	_, err = service.Validate(ValidateRequest{TemplatePath: filepath.Join(dir, "nope.pdf"), Strategy: form.StrategyAuto})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
}
