package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"video-edit-service/pkg/errno"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Failed 返回错误响应，HTTP状态码由错误类别决定
func Failed(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errno.IsValidation(err):
		status = http.StatusBadRequest
	case errno.IsNotFound(err):
		status = http.StatusNotFound
	}
	c.JSON(status, Response{
		Code:    errno.CodeOf(err),
		Message: err.Error(),
	})
}
