package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/juvenstu/real-estate-marketplace/internal/handler"
	"github.com/juvenstu/real-estate-marketplace/internal/repository"
	"github.com/juvenstu/real-estate-marketplace/internal/service"
	"github.com/juvenstu/real-estate-marketplace/internal/testutil"
	"github.com/juvenstu/real-estate-marketplace/internal/utils"
	"github.com/juvenstu/real-estate-marketplace/pkg/logger"
)

type AuthHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

func (s *AuthHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	authService := service.NewAuthService(userRepo, "test-secret-key", 1*time.Hour)
	authHandler := handler.NewAuthHandler(authService, false)

	s.router = gin.New()
	s.router.POST("/api/auth/signup", authHandler.Signup)
	s.router.POST("/api/auth/signin", authHandler.Signin)
	s.router.POST("/api/auth/google", authHandler.Google)
	s.router.GET("/api/auth/signout", authHandler.Signout)
}

func (s *AuthHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthHandlerIntegrationTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	bodyBytes, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == utils.SessionCookie {
			return cookie
		}
	}
	return nil
}

func (s *AuthHandlerIntegrationTestSuite) TestSignupSuccess() {
	w := s.postJSON("/api/auth/signup", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "newuser", response["username"])
	assert.Equal(s.T(), "newuser@example.com", response["email"])
	assert.NotEmpty(s.T(), response["avatar"])

	// The hashed secret never leaves the server
	assert.NotContains(s.T(), w.Body.String(), "PasswordHash")
	assert.NotContains(s.T(), w.Body.String(), "$2a$")

	cookie := sessionCookie(w)
	assert.NotNil(s.T(), cookie)
	assert.True(s.T(), cookie.HttpOnly)
	assert.Equal(s.T(), http.SameSiteLaxMode, cookie.SameSite)
	assert.NotEmpty(s.T(), cookie.Value)
}

func (s *AuthHandlerIntegrationTestSuite) TestSignupDuplicateEmail() {
	existing, _ := testutil.CreateTestUser("existing", "taken@example.com", "Pass12345")
	s.testDB.DB.Create(existing)

	w := s.postJSON("/api/auth/signup", map[string]string{
		"username": "different",
		"email":    "taken@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(s.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), false, response["success"])
	assert.Equal(s.T(), float64(http.StatusConflict), response["statusCode"])
	assert.Contains(s.T(), response["message"], "email")
}

func (s *AuthHandlerIntegrationTestSuite) TestSignupDuplicateUsername() {
	existing, _ := testutil.CreateTestUser("takenname", "someone@example.com", "Pass12345")
	s.testDB.DB.Create(existing)

	w := s.postJSON("/api/auth/signup", map[string]string{
		"username": "takenname",
		"email":    "different@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(s.T(), http.StatusConflict, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestSignupInvalidInput() {
	testCases := []struct {
		name     string
		reqBody  map[string]string
		expected string
	}{
		{
			name: "Short username",
			reqBody: map[string]string{
				"username": "ab",
				"email":    "test@example.com",
				"password": "Pass123456",
			},
			expected: "username must be at least 3 characters",
		},
		{
			name: "Invalid email",
			reqBody: map[string]string{
				"username": "testuser",
				"email":    "invalid-email",
				"password": "Pass123456",
			},
			expected: "invalid email format",
		},
		{
			name: "Short password",
			reqBody: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "short",
			},
			expected: "password must be at least 8 characters",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := s.postJSON("/api/auth/signup", tc.reqBody)

			assert.Equal(s.T(), http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			assert.Contains(s.T(), response["message"], tc.expected)
		})
	}
}

func (s *AuthHandlerIntegrationTestSuite) TestSigninSuccess() {
	testUser, _ := testutil.CreateTestUser("signinuser", "signin@example.com", "SigninPass123")
	s.testDB.DB.Create(testUser)

	w := s.postJSON("/api/auth/signin", map[string]string{
		"email":    "signin@example.com",
		"password": "SigninPass123",
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "signinuser", response["username"])

	cookie := sessionCookie(w)
	assert.NotNil(s.T(), cookie)
	assert.True(s.T(), cookie.HttpOnly)
}

func (s *AuthHandlerIntegrationTestSuite) TestSigninWrongPassword() {
	testUser, _ := testutil.CreateTestUser("signinuser", "signin@example.com", "CorrectPass123")
	s.testDB.DB.Create(testUser)

	w := s.postJSON("/api/auth/signin", map[string]string{
		"email":    "signin@example.com",
		"password": "WrongPass123",
	})

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), false, response["success"])
	assert.Equal(s.T(), float64(http.StatusUnauthorized), response["statusCode"])
}

func (s *AuthHandlerIntegrationTestSuite) TestSigninUnknownEmail() {
	w := s.postJSON("/api/auth/signin", map[string]string{
		"email":    "nobody@example.com",
		"password": "SomePass123",
	})

	// Same failure as a wrong password: the response does not reveal
	// whether the account exists
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestGoogleCreatesAccountOnFirstLogin() {
	w := s.postJSON("/api/auth/google", map[string]string{
		"name":   "Ada Lovelace",
		"email":  "ada@example.com",
		"avatar": "https://images.example.com/ada.png",
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), "ada@example.com", response["email"])
	assert.Contains(s.T(), response["username"], "adalovelace")
	assert.Equal(s.T(), "https://images.example.com/ada.png", response["avatar"])
	assert.NotNil(s.T(), sessionCookie(w))
}

func (s *AuthHandlerIntegrationTestSuite) TestGoogleSignsInExistingAccount() {
	existing, _ := testutil.CreateTestUser("adauser", "ada@example.com", "AdaPass12345")
	s.testDB.DB.Create(existing)

	w := s.postJSON("/api/auth/google", map[string]string{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), existing.ID.String(), response["id"])
	assert.Equal(s.T(), "adauser", response["username"])
}

func (s *AuthHandlerIntegrationTestSuite) TestSignout() {
	req, _ := http.NewRequest(http.MethodGet, "/api/auth/signout", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	assert.NotNil(s.T(), cookie)
	assert.Empty(s.T(), cookie.Value)
	assert.Negative(s.T(), cookie.MaxAge)
}

func TestAuthHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerIntegrationTestSuite))
}
