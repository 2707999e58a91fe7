package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/utils/tests"
)

func TestOpenAssignsSharedHandle(t *testing.T) {
	prev := DB
	defer func() { DB = prev }()

	db := open(tests.DummyDialector{})
	require.NotNil(t, db)
	assert.Same(t, db, DB)
}
