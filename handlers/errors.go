package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/api/pkg/logger"
	"github.com/devconnect/api/pkg/middleware"
)

// ErrorItem is one entry of the `{errors:[...]}` body used for field-level
// validation failures.
type ErrorItem struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

func abortMsg(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"msg": msg})
}

func abortErrors(c *gin.Context, status int, items ...ErrorItem) {
	c.AbortWithStatusJSON(status, gin.H{"errors": items})
}

// serverError hides store/runtime failures behind a uniform 500 body.
func serverError(c *gin.Context, err error) {
	logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	abortMsg(c, http.StatusInternalServerError, "Server Error")
}

// bindingErrors translates gin/validator binding failures into field-level
// messages. messages is keyed by struct field name; fields without an entry
// fall back to the raw validator message.
func bindingErrors(err error, messages map[string]string) []ErrorItem {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorItem{{Msg: err.Error()}}
	}
	out := make([]ErrorItem, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		out = append(out, ErrorItem{Msg: msg, Param: fe.Field()})
	}
	return out
}

// objectIDParam parses a path parameter as an ObjectID, rejecting malformed
// ids with 400. Missing resources are a different failure and get 404.
func objectIDParam(c *gin.Context, name, badMsg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortMsg(c, http.StatusBadRequest, badMsg)
		return primitive.NilObjectID, false
	}
	return id, true
}

// callerID returns the authenticated user's ObjectID. Tokens only ever embed
// ids we issued, so a parse failure means the token is not one of ours.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		abortMsg(c, http.StatusUnauthorized, "Token is not valid")
		return primitive.NilObjectID, false
	}
	return id, true
}
