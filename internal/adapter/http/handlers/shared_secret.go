package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"

	"agency_configurator/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentSignalSecretHeader carries the secret that guards manual payment signals.
const PaymentSignalSecretHeader = "X-Payment-Signal-Secret"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid credentials", http.StatusUnauthorized)

// RequireSharedSecret rejects requests whose header does not match secret.
// An empty secret disables the guarded routes entirely.
func RequireSharedSecret(header, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(header)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			log.Printf("[auth][middleware] rejected path=%s secret_configured=%t header_present=%t", c.FullPath(), secret != "", got != "")
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		c.Next()
	}
}
