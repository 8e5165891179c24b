package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	orig, commit, built := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = orig, commit, built })

	Version, GitCommit, BuildTime = "v1.2.3", "unknown", "unknown"
	assert.Equal(t, "blogsmith v1.2.3", String())

	GitCommit, BuildTime = "abc123", "2024-01-02"
	assert.Equal(t, "blogsmith v1.2.3 (commit abc123, built 2024-01-02)", String())
}

func TestDefaultsInitialized(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}
