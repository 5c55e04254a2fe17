package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// errStatus pairs a usecase sentinel with the HTTP representation handlers
// answer it with.
type errStatus struct {
	target  error
	code    int
	message string
}

// respondError writes the first matching case for err. Unmatched errors get a
// 500 with the fallback message so internal detail never leaks to clients.
func respondError(c *gin.Context, err error, fallback string, cases ...errStatus) {
	for _, cs := range cases {
		if cs.target == nil {
			continue
		}
		if errors.Is(err, cs.target) {
			c.JSON(cs.code, NewErrorResponse(c, cs.message))
			return
		}
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse(c, fallback))
}
