package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes the flat {"error": msg} body the API uses for every failure.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

// MethodNotAllowed answers 405 carrying the rejected method name.
func MethodNotAllowed(ctx *gin.Context) {
	Error(ctx, http.StatusMethodNotAllowed, fmt.Sprintf("Method '%s' Not Allowed", ctx.Request.Method))
}
