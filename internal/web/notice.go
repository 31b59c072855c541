package web

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/ticket-tracker/internal/auth"
	apierrors "github.com/yukikurage/ticket-tracker/internal/errors"
)

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Severity string
	Message  string
}

func init() {
	// Session stores serialize flashes with encoding/gob.
	gob.Register(Notice{})
}

// AddNotice queues a notice in the client's session.
func AddNotice(c *gin.Context, severity, message string) {
	sessions.Default(c).AddFlash(Notice{Severity: severity, Message: message})
}

// Redirect saves the session and sends the client to location.
func Redirect(c *gin.Context, location string) {
	if err := sessions.Default(c).Save(); err != nil {
		apierrors.InternalError(c, fmt.Errorf("failed to save session: %w", err))
		return
	}
	c.Redirect(http.StatusFound, location)
}

// Fail reports err to the client. Recoverable errors become a notice and a
// redirect to location; anything else renders the error page.
func Fail(c *gin.Context, err error, location string) {
	if !apierrors.Recoverable(err) {
		apierrors.InternalError(c, err)
		return
	}
	_ = c.Error(err)
	AddNotice(c, apierrors.Severity(err), apierrors.Message(err))
	Redirect(c, location)
}

// Render executes the named template with the pending notices and the
// current identity added to data.
func Render(c *gin.Context, name string, data gin.H) {
	session := sessions.Default(c)

	var notices []Notice
	if flashes := session.Flashes(); len(flashes) > 0 {
		for _, flash := range flashes {
			if notice, ok := flash.(Notice); ok {
				notices = append(notices, notice)
			}
		}
		if err := session.Save(); err != nil {
			apierrors.InternalError(c, fmt.Errorf("failed to save session: %w", err))
			return
		}
	}

	if data == nil {
		data = gin.H{}
	}
	data["Notices"] = notices
	if identity, ok := auth.CurrentIdentity(c); ok {
		data["Identity"] = &identity
	}

	c.HTML(http.StatusOK, name, data)
}
