package utils

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"barbershop-web/models"

	"github.com/gin-gonic/gin"
)

const flashCookie = "barbershop_flash"

// Flash is a one-shot notice carried across a redirect. Change carries the
// local effect of an appointment action to the reloaded view.
type Flash struct {
	Title   string                    `json:"title,omitempty"`
	Message string                    `json:"message,omitempty"`
	Change  *models.AppointmentChange `json:"change,omitempty"`
}

// Empty reports whether there is nothing to carry.
func (f Flash) Empty() bool {
	return f.Title == "" && f.Change == nil
}

func SetFlash(c *gin.Context, f Flash) {
	if f.Empty() {
		return
	}
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(data), 60, "/", "", false, true)
}

// PopFlash returns and clears the pending flash, if any.
func PopFlash(c *gin.Context) (Flash, bool) {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return Flash{}, false
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Flash{}, false
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil || f.Empty() {
		return Flash{}, false
	}
	return f, true
}
