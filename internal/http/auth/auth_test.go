package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziz0u9/MillesBTP-sub000/internal/http/auth"
)

func signToken(t *testing.T, secret []byte, claims jwt.Claims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	return raw
}

func TestMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	ownerID := uuid.New()

	type testCase struct {
		name       string
		authHeader string
		wantStatus int
	}

	tests := []testCase{
		{
			name: "ValidToken",
			authHeader: "Bearer " + signToken(t, secret, jwt.RegisteredClaims{
				Subject:   ownerID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingHeader",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NotBearer",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "ExpiredToken",
			authHeader: "Bearer " + signToken(t, secret, jwt.RegisteredClaims{
				Subject:   ownerID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "WrongSecret",
			authHeader: "Bearer " + signToken(t, []byte("other-secret"), jwt.RegisteredClaims{
				Subject:   ownerID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "SubjectNotAUUID",
			authHeader: "Bearer " + signToken(t, secret, jwt.RegisteredClaims{
				Subject:   "jean.dupont",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOwner uuid.UUID

			handler := auth.Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := auth.OwnerID(r.Context())
				require.True(t, ok)
				gotOwner = id
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/worksites", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, ownerID, gotOwner)
			}
		})
	}
}

func TestOwnerID_Absent(t *testing.T) {
	_, ok := auth.OwnerID(context.Background())
	assert.False(t, ok)
}
