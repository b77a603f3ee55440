package v1

import (
	"net/http"

	"candidate-tracker-backend/internal/delivery/http/response"
	"candidate-tracker-backend/internal/domain"
	"candidate-tracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers the auth routes. loginLimiter is applied to the
// login endpoint only.
func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, loginLimiter gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	public.POST("/login", loginLimiter, handler.Login)
	protected.POST("/logout", handler.Logout)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login godoc
// @Summary      Recruiter login
// @Description  Authenticate with username and password, returns a bearer token. Re-login before logout returns the same token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Login credentials"
// @Success      200  {object}  response.Response{data=LoginResponse}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	// Both fields are checked up front so the caller sees every problem at once.
	details := map[string][]string{}
	if req.Username == "" {
		details["username"] = append(details["username"], "Username is required.")
	}
	if req.Password == "" {
		details["password"] = append(details["password"], "Password is required.")
	}
	if len(details) > 0 {
		c.Error(apperror.Validation(details))
		return
	}

	token, user, err := h.authUC.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", LoginResponse{
		Token: token,
		User:  user,
	})
}

// Logout godoc
// @Summary      Recruiter logout
// @Description  Delete the caller's active token. The identity is taken from the presented bearer token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.authUC.Logout(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Successfully logged out", nil)
}
