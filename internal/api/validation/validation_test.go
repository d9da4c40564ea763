package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

type passwordProbe struct {
	Password string `json:"password" validate:"required,password"`
}

func TestPasswordRule(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"meets all four classes", "Passw0rd!", true},
		{"longer with symbol", "Str0ng&Password", true},
		{"too short", "Pa0!", false},
		{"missing uppercase", "passw0rd!", false},
		{"missing lowercase", "PASSW0RD!", false},
		{"missing digit", "Password!", false},
		{"missing special", "Passw0rd1", false},
		{"special outside the allowed set", "Passw0rd?", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(&passwordProbe{Password: tc.password})
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
			assert.Contains(t, domainErr.Details, "password")
		})
	}
}

type profileProbe struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email"`
}

func TestProfileRules(t *testing.T) {
	err := Struct(&profileProbe{Name: "A", Email: "not-an-email"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Details, "name")
	assert.Contains(t, domainErr.Details, "email")

	assert.NoError(t, Struct(&profileProbe{Name: "Al", Email: "al@example.com"}))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
}
