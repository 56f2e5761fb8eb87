package middleware

import "github.com/gin-gonic/gin"

// tenantIDKey is the key used to store the authenticated tenant's ID in the
// request context. Using a custom type prevents collisions.
const tenantIDKey = contextKey("tenantID")

// GetTenantIDFromContext retrieves the authenticated tenant ID from the Gin
// context. It returns the tenant ID and a boolean indicating if it was found.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	tenantIDVal, exists := c.Get(string(tenantIDKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(tenantIDKey)
		if ctxVal != nil {
			return ctxVal.(string), true
		}
		return "", false
	}

	tenantID, ok := tenantIDVal.(string)
	if !ok {
		return "", false
	}

	return tenantID, true
}
