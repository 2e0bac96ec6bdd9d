package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikeNeutralizesMetacharacters(t *testing.T) {
	assert.Equal(t, `a\_c`, escapeLike("a_c"))
	assert.Equal(t, `50\%off`, escapeLike("50%off"))
	assert.Equal(t, `back\\slash`, escapeLike(`back\slash`))
	assert.Equal(t, `\\\%\_`, escapeLike(`\%_`))
}

func TestEscapeLikeLeavesPlainTermsAlone(t *testing.T) {
	assert.Equal(t, "", escapeLike(""))
	assert.Equal(t, "hello world", escapeLike("hello world"))
}
