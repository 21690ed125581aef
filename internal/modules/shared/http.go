package shared

import (
	"github.com/gin-gonic/gin"
)

// Query returns a pointer to the query parameter name, or nil when it is
// absent or empty.
func Query(c *gin.Context, name string) *string {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return nil
	}
	return &v
}

// BindOptionalJSON binds the request body into dst when there is one.
func BindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}
