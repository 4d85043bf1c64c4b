package utils

import "github.com/gin-gonic/gin"

// Wire contract: successful payloads ride under "data", failures under
// "error" with the HTTP status carrying the classification.

func RespondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"data": data})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{"error": err.Error()})
}
