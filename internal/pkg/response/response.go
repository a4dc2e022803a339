package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	CodeSuccess           = 0
	CodeParamError        = 1000
	CodeAuthFailed        = 1001
	CodePermissionDenied  = 1002
	CodeResourceNotFound  = 1003
	CodeProfitLocked      = 1004
	CodeInsufficientFunds = 1005
	CodeServerError       = 5000
)

// Default message per code (user-facing, Spanish)
var codeMessages = map[int]string{
	CodeSuccess:           "success",
	CodeParamError:        "parámetros inválidos",
	CodeAuthFailed:        "autenticación fallida",
	CodePermissionDenied:  "permiso denegado",
	CodeResourceNotFound:  "recurso no encontrado",
	CodeProfitLocked:      "ya activaste tus ganancias hoy",
	CodeInsufficientFunds: "saldo insuficiente",
	CodeServerError:       "error interno del servidor",
}

// Response is the unified envelope for every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	if message == "" {
		message = codeMessages[code]
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ErrorWithData attaches a payload to an error response, e.g. the
// next-eligible timestamp on a locked profit gate.
func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	if message == "" {
		message = codeMessages[code]
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

func AuthError(c *gin.Context, message string) {
	Error(c, CodeAuthFailed, message)
}

func PermissionError(c *gin.Context, message string) {
	Error(c, CodePermissionDenied, message)
}

func NotFoundError(c *gin.Context, message string) {
	Error(c, CodeResourceNotFound, message)
}

func InsufficientFundsError(c *gin.Context, message string) {
	Error(c, CodeInsufficientFunds, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, CodeServerError, message)
}
