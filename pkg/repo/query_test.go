package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	got := Join("SELECT id FROM use_cases", JoinWhere("product = $1", "use_case = $2"), "", "ORDER BY use_case, product")
	assert.Equal(t, "SELECT id FROM use_cases WHERE product = $1 AND use_case = $2 ORDER BY use_case, product", got)
}

func TestJoinWhere_Empty(t *testing.T) {
	assert.Empty(t, JoinWhere())
	assert.Equal(t, "SELECT 1", Join("SELECT 1", JoinWhere()))
}

func TestExists(t *testing.T) {
	assert.Equal(t, "SELECT EXISTS (SELECT 1 FROM pending_criteria WHERE id = $1)", Exists("SELECT 1 FROM pending_criteria WHERE id = $1"))
}
