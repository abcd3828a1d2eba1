package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 信封中的固定文案。
const (
	msgInvalidID     = "Invalid UUID"
	msgInvalidData   = "Invalid data"
	msgInternal      = "Something went wrong"
	msgRouteNotFound = "Route not found"
)

// Success 写出 {success:true, ...payload}。
func Success(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail 写出 {success:false, message}。
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}

// FailWithDetail 写出 {success:false, message, error}，error 为合并后的校验信息。
func FailWithDetail(c *gin.Context, status int, msg, detail string) {
	c.JSON(status, gin.H{"success": false, "message": msg, "error": detail})
}

func BadRequest(c *gin.Context, msg string) { Fail(c, http.StatusBadRequest, msg) }
func NotFound(c *gin.Context, msg string)   { Fail(c, http.StatusNotFound, msg) }
func Internal(c *gin.Context)               { Fail(c, http.StatusInternalServerError, msgInternal) }

func InvalidData(c *gin.Context, detail string) {
	FailWithDetail(c, http.StatusBadRequest, msgInvalidData, detail)
}
