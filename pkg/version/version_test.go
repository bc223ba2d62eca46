package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}

func TestString(t *testing.T) {
	orig := gitCommit
	t.Cleanup(func() { gitCommit = orig })

	gitCommit = "abc1234"
	s := String()
	assert.Contains(t, s, "accountdesk ")
	assert.Contains(t, s, "(abc1234)")
}
