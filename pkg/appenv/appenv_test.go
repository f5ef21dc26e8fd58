package appenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Test, Parse("test"))
	assert.Equal(t, Test, Parse("  TEST "))
	assert.Equal(t, Production, Parse("production"))
	assert.Equal(t, Production, Parse(""))
	assert.Equal(t, Production, Parse("staging"))
}

func TestCurrent(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	assert.Equal(t, Test, Current())
	assert.True(t, IsTest())

	t.Setenv("APP_ENV", "")
	assert.True(t, IsProduction())
}
