package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metalagman/droneplug/internal/config"
	"github.com/metalagman/droneplug/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	c, err := Build(config.Config{}, Environ{"A=1"})
	require.NoError(t, err)

	assert.NotNil(t, c.Resolver)
	assert.NotNil(t, c.Renderer)
	assert.Equal(t, input.Environment{"A": "1"}, c.Env)
}

func TestBuild_EnvFileFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PLUGIN_TAG=latest\nDRONE_BRANCH=dev\n"), 0o644))

	c, err := Build(config.Config{EnvFile: path}, Environ{"DRONE_BRANCH=main"})
	require.NoError(t, err)

	assert.Equal(t, "main", c.Env["DRONE_BRANCH"])
	assert.Equal(t, "latest", c.Env["PLUGIN_TAG"])
}

func TestBuild_EnvFileMissing(t *testing.T) {
	_, err := Build(config.Config{EnvFile: filepath.Join(t.TempDir(), "nope.env")}, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "nope.env"), err.Error())
}

func TestBuild_ResolvesFromEnvFile(t *testing.T) {
	lines := []string{
		"DRONE_REPO_OWNER=octocat",
		"DRONE_REPO_NAME=hello-world",
		"DRONE_REPO=octocat/hello-world",
		"DRONE_REPO_LINK=https://github.com/octocat/hello-world",
		"DRONE_REMOTE_URL=https://github.com/octocat/hello-world.git",
		"DRONE_BUILD_NUMBER=1",
		"DRONE_BUILD_EVENT=push",
		"DRONE_BRANCH=main",
		"DRONE_COMMIT=abc",
		"DRONE_COMMIT_REF=refs/heads/main",
		"DRONE_COMMIT_AUTHOR=octocat",
		"DRONE_COMMIT_AUTHOR_EMAIL=octocat@example.com",
		"DRONE_WORKSPACE=/drone/src",
		"PLUGIN_DRY_RUN=true",
	}
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))

	c, err := Build(config.Config{EnvFile: path}, nil)
	require.NoError(t, err)

	in, err := c.Resolver.Resolve([]string{"plugin"}, c.Env, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"dry_run": "true"}, in["vargs"])
}
