package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func tokenRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegido", RequireToken(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": GetToken(c)})
	})
	return r
}

func doGet(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func firmarJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"ficha": "E001",
		"exp":   exp.Unix(),
	})
	firmado, err := token.SignedString([]byte("secreto-remoto"))
	require.NoError(t, err)
	return firmado
}

func TestRequireToken_SinCabecera(t *testing.T) {
	r := tokenRouter()
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Basic abc").Code)
}

func TestRequireToken_Vigente(t *testing.T) {
	r := tokenRouter()
	tok := firmarJWT(t, time.Now().Add(time.Hour))

	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tok)
}

func TestRequireToken_Expirado(t *testing.T) {
	r := tokenRouter()
	tok := firmarJWT(t, time.Now().Add(-time.Hour))

	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expirado")
}

func TestRequireToken_OpacoSeRelaya(t *testing.T) {
	// Non-JWT tokens pass through; the remote API decides their fate
	r := tokenRouter()
	w := doGet(r, "Bearer token-opaco-123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token-opaco-123")
}

func pinRouter(hash string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/reverso", SupervisorPin(hash), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doDelete(r *gin.Engine, pin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/reverso", nil)
	if pin != "" {
		req.Header.Set("X-Supervisor-Pin", pin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSupervisorPin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	require.NoError(t, err)
	r := pinRouter(string(hash))

	assert.Equal(t, http.StatusNoContent, doDelete(r, "4321").Code)
	assert.Equal(t, http.StatusForbidden, doDelete(r, "0000").Code)
	assert.Equal(t, http.StatusForbidden, doDelete(r, "").Code)
}

func TestSupervisorPin_Deshabilitado(t *testing.T) {
	r := pinRouter("")
	w := doDelete(r, "4321")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "deshabilitado")
}
