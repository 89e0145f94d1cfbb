package user_test

import (
	"testing"

	"github.com/amirasaad/compago/pkg/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestProfile_Initials(t *testing.T) {
	assert.Equal(t, "CH", user.Profile{Name: "Carlos Hernández"}.Initials())
	assert.Equal(t, "ÁL", user.Profile{Name: "ángel lópez pérez"}.Initials())
	assert.Equal(t, "XY", user.Profile{Name: "Carlos Hernández", Avatar: "XY"}.Initials())
	assert.Empty(t, user.Profile{}.Initials())
}
