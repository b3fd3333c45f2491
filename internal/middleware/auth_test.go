package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain"
)

func testUser(role string) *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Username: "alice",
		Role:     role,
		Status:   domain.StatusActive,
	}
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, setup func(*http.Request)) (*domain.Session, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var sess *domain.Session
	err := mw(func(c echo.Context) error {
		s, err := GetSession(c)
		if err != nil {
			return err
		}
		sess = s
		return nil
	})(c)
	return sess, err
}

func TestSessionMiddleware(t *testing.T) {
	user := testUser(domain.RoleUser)
	token, err := GenerateToken(user)
	require.NoError(t, err)

	t.Run("bearer_header", func(t *testing.T) {
		sess, err := runMiddleware(t, SessionMiddleware, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, sess.UserID)
		assert.Equal(t, "alice", sess.Username)
		assert.Equal(t, domain.RoleUser, sess.Role)
	})

	t.Run("cookie_fallback", func(t *testing.T) {
		sess, err := runMiddleware(t, SessionMiddleware, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "token", Value: token})
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, sess.UserID)
	})

	t.Run("missing_token", func(t *testing.T) {
		_, err := runMiddleware(t, SessionMiddleware, nil)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("garbage_token", func(t *testing.T) {
		_, err := runMiddleware(t, SessionMiddleware, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not.a.token")
		})
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestAdminMiddleware(t *testing.T) {
	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return SessionMiddleware(AdminMiddleware(next))
	}

	t.Run("admin_passes", func(t *testing.T) {
		token, err := GenerateToken(testUser(domain.RoleAdmin))
		require.NoError(t, err)

		_, err = runMiddleware(t, chain, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		assert.NoError(t, err)
	})

	t.Run("user_forbidden", func(t *testing.T) {
		token, err := GenerateToken(testUser(domain.RoleUser))
		require.NoError(t, err)

		_, err = runMiddleware(t, chain, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})
}
