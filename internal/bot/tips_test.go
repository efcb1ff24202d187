package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTips(t *testing.T) {
	tips := parseTips("one\n\n  two  \nthree\n")
	assert.Equal(t, []string{"one", "two", "three"}, tips)

	assert.Empty(t, parseTips(""))
}

func TestRandomTip(t *testing.T) {
	assert.NotEmpty(t, sleepTips, "embedded tips file must not be empty")

	tip := randomTip()
	assert.Contains(t, sleepTips, tip)
}
