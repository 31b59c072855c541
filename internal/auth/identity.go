package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/ticket-tracker/internal/constants"
	"github.com/yukikurage/ticket-tracker/internal/models"
)

// Identity is the authenticated caller of a single request.
type Identity struct {
	UserID  uint64
	Email   string
	IsAdmin bool
}

// StartSession records user in the client's session. Any previous identity
// is replaced. The session still has to be saved by the caller.
func StartSession(c *gin.Context, user *models.User) {
	session := sessions.Default(c)
	session.Delete(constants.SessionKeyUserID)
	session.Delete(constants.SessionKeyEmail)
	session.Delete(constants.SessionKeyIsAdmin)
	session.Set(constants.SessionKeyUserID, user.ID)
	session.Set(constants.SessionKeyEmail, user.Email)
	session.Set(constants.SessionKeyIsAdmin, user.IsAdmin)

	c.Set(constants.ContextKeyIdentity, Identity{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
}

// EndSession clears all session state, including pending notices. The
// session still has to be saved by the caller.
func EndSession(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	c.Set(constants.ContextKeyIdentity, nil)
}

// IdentityFromSession decodes the identity stored by StartSession.
func IdentityFromSession(session sessions.Session) (Identity, bool) {
	userID, ok := toUint64(session.Get(constants.SessionKeyUserID))
	if !ok {
		return Identity{}, false
	}
	email, _ := session.Get(constants.SessionKeyEmail).(string)
	isAdmin, _ := session.Get(constants.SessionKeyIsAdmin).(bool)

	return Identity{UserID: userID, Email: email, IsAdmin: isAdmin}, true
}

// CurrentIdentity returns the identity resolved for this request.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

// IsAdmin reports whether the current request is made by an admin. It is
// false when nobody is logged in.
func IsAdmin(c *gin.Context) bool {
	identity, ok := CurrentIdentity(c)
	return ok && identity.IsAdmin
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
