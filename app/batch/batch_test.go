package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/yourtube/app/queue"
)

func TestLoad(t *testing.T) {
	file := writeFile(t, `# weekend list
quality: 720p
jobs:
  - url: https://www.youtube.com/watch?v=1
  - url: https://www.youtube.com/watch?v=2
    quality: best
  - url: http://example.com/v/3
    quality: 1080p
`)
	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "720p", cfg.Quality)
	assert.Equal(t, []queue.Request{
		{URL: "https://www.youtube.com/watch?v=1", Quality: "720p"},
		{URL: "https://www.youtube.com/watch?v=2", Quality: "best"},
		{URL: "http://example.com/v/3", Quality: "1080p"},
	}, cfg.Jobs)
}

func TestLoad_DefaultQuality(t *testing.T) {
	cfg, err := Load(writeFile(t, "jobs:\n  - url: https://example.com/v\n"))
	require.NoError(t, err)
	assert.Equal(t, "best", cfg.Quality)
	assert.Equal(t, "best", cfg.Jobs[0].Quality)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty file", "", "at least one job is required"},
		{"no jobs", "quality: best\njobs: []\n", "at least one job is required"},
		{"missing url", "jobs:\n  - quality: 720p\n", "job 1: url is required"},
		{"bad url", "jobs:\n  - url: https://example.com/a\n  - url: not-a-url\n", `job 2: invalid url "not-a-url"`},
		{"bad job quality", "jobs:\n  - url: https://example.com/a\n    quality: huge\n", `job 1: invalid quality "huge"`},
		{"bad default quality", "quality: 4k\njobs:\n  - url: https://example.com/a\n", `invalid default quality "4k"`},
		{"unknown field", "jobs:\n  - url: https://example.com/a\n    title: x\n", "field title not found"},
		{"broken yaml", "jobs: [\n", "failed to parse batch file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := Load("/non/existent/batch.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read batch file")
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	assert.Equal(t, "Yourtube Batch File Schema", schema.Title)
	assert.Equal(t, "1.0.0", schema.Version)

	cfgDef, ok := schema.Definitions["Config"]
	require.True(t, ok)
	assert.Equal(t, []string{"jobs"}, cfgDef.Required)
	reqDef, ok := schema.Definitions["Request"]
	require.True(t, ok)
	assert.Equal(t, []string{"url"}, reqDef.Required)
}

func TestEmbeddedSchemaInSync(t *testing.T) {
	var embedded map[string]any
	require.NoError(t, json.Unmarshal(embeddedSchemaData, &embedded))

	generated, err := json.Marshal(GenerateSchema())
	require.NoError(t, err)
	var fresh map[string]any
	require.NoError(t, json.Unmarshal(generated, &fresh))

	defs := func(m map[string]any) []string {
		var res []string
		for k := range m["$defs"].(map[string]any) {
			res = append(res, k)
		}
		return res
	}
	assert.ElementsMatch(t, defs(fresh), defs(embedded), "run go generate ./app/batch")
	assert.Equal(t, fresh["title"], embedded["title"])
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "batch.yml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}
