package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DS1003/blog-moomel-sub001/internal/policy"
)

// RequirePolicy gates a route group on a single policy action. Ownership is
// not known at routing time, so isOwner is false here; handlers that care
// about ownership consult the policy again with the real value.
func RequirePolicy(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if d := policy.Can(user.Role, action, false); !d.Allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly restricts a group to ADMIN accounts.
func AdminOnly() gin.HandlerFunc {
	return RequirePolicy(policy.ActionManageUsers)
}

// StaffOnly allows ADMIN and MODERATOR, the comment-moderation tier.
func StaffOnly() gin.HandlerFunc {
	return RequirePolicy(policy.ActionHideComment)
}
