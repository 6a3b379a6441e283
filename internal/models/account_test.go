package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeLevel(t *testing.T) {
	assert.Equal(t, 0, CodeLevel(""))
	assert.Equal(t, 1, CodeLevel("1"))
	assert.Equal(t, 2, CodeLevel("1.1"))
	assert.Equal(t, 4, CodeLevel("1.1.01.001"))
}

func TestParentCode(t *testing.T) {
	assert.Equal(t, "", ParentCode("1"))
	assert.Equal(t, "1", ParentCode("1.1"))
	assert.Equal(t, "1.1.01", ParentCode("1.1.01.001"))
}
