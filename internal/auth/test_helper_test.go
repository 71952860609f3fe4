package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"congress-api/internal/logs"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type mockUserService struct {
	CreateUserFn     func(user User) (*User, error)
	GetUserByEmailFn func(email string) (*User, error)
	GetUserByIDFn    func(id int) (*User, error)
	GetAllUsersFn    func() ([]User, error)
	UpdateUserFn     func(id int, input UserInput) (*User, error)
	UpdateProfileFn  func(id int, input ProfileInput) (*User, error)
	DeleteUserFn     func(id int) error
	SendOTPFn        func(email string) (*User, string, error)
	ResetPasswordFn  func(email, code, newPassword string) (*User, error)
}

func (m *mockUserService) CreateUser(user User) (*User, error) {
	if m.CreateUserFn == nil {
		return nil, assertErr("CreateUser not implemented")
	}
	return m.CreateUserFn(user)
}

func (m *mockUserService) GetUserByEmail(email string) (*User, error) {
	if m.GetUserByEmailFn == nil {
		return nil, assertErr("GetUserByEmail not implemented")
	}
	return m.GetUserByEmailFn(email)
}

func (m *mockUserService) GetUserByID(id int) (*User, error) {
	if m.GetUserByIDFn == nil {
		return nil, assertErr("GetUserByID not implemented")
	}
	return m.GetUserByIDFn(id)
}

func (m *mockUserService) GetAllUsers() ([]User, error) {
	if m.GetAllUsersFn == nil {
		return nil, assertErr("GetAllUsers not implemented")
	}
	return m.GetAllUsersFn()
}

func (m *mockUserService) UpdateUser(id int, input UserInput) (*User, error) {
	if m.UpdateUserFn == nil {
		return nil, assertErr("UpdateUser not implemented")
	}
	return m.UpdateUserFn(id, input)
}

func (m *mockUserService) UpdateProfile(id int, input ProfileInput) (*User, error) {
	if m.UpdateProfileFn == nil {
		return nil, assertErr("UpdateProfile not implemented")
	}
	return m.UpdateProfileFn(id, input)
}

func (m *mockUserService) DeleteUser(id int) error {
	if m.DeleteUserFn == nil {
		return assertErr("DeleteUser not implemented")
	}
	return m.DeleteUserFn(id)
}

func (m *mockUserService) SendOTP(email string) (*User, string, error) {
	if m.SendOTPFn == nil {
		return nil, "", assertErr("SendOTP not implemented")
	}
	return m.SendOTPFn(email)
}

func (m *mockUserService) ResetPassword(email, code, newPassword string) (*User, error) {
	if m.ResetPasswordFn == nil {
		return nil, assertErr("ResetPassword not implemented")
	}
	return m.ResetPasswordFn(email, code, newPassword)
}

type mockLogService struct {
	LogFn func(entry logs.SystemLog, payload any) error
}

func (m *mockLogService) Log(entry logs.SystemLog, payload any) error {
	if m.LogFn == nil {
		return nil
	}
	return m.LogFn(entry, payload)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func setupAuthRouter(ac *AuthController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.Use(func(c *gin.Context) {
		if v := c.GetHeader("X-UserID"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.Set("userID", f)
			} else {
				c.Set("userID", v)
			}
		}
		c.Next()
	})

	r.POST("/register", ac.Register)
	r.POST("/login", ac.Login)
	r.POST("/logout", ac.Logout)
	r.GET("/me", ac.Me)
	r.POST("/refresh", ac.Refresh)

	r.GET("/profile", ac.GetProfile)
	r.PUT("/profile", ac.UpdateProfile)

	r.GET("/users", ac.GetUsers)
	r.POST("/users", ac.CreateUser)
	r.GET("/users/:id", ac.GetUser)
	r.PUT("/users/:id", ac.UpdateUser)
	r.DELETE("/users/:id", ac.DeleteUser)

	r.POST("/send-otp", ac.SendOTP)
	r.POST("/reset-password", ac.ResetPassword)

	return r
}

func postJSON(r http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func jsonWithHeader(r http.Handler, method, path string, body []byte, key, value string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(key, value)
	}
	r.ServeHTTP(w, req)
	return w
}

func doReq(r http.Handler, method, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func doReqWithHeader(r http.Handler, method, path, key, value string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if key != "" {
		req.Header.Set(key, value)
	}
	r.ServeHTTP(w, req)
	return w
}

func requireContains(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected %q to contain %q", s, sub)
	}
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(b)
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
