package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindingErrors flattens validator errors into a field-path -> message map.
func bindingErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field != "" {
			field = strings.ToLower(field[:1]) + field[1:]
		}
		switch fe.Tag() {
		case "required":
			out[field] = "This value should not be blank"
		case "email":
			out[field] = "This value is not a valid email address"
		case "min":
			out[field] = fmt.Sprintf("This value is too short (minimum %s)", fe.Param())
		case "max":
			out[field] = fmt.Sprintf("This value is too long (maximum %s)", fe.Param())
		case "oneof":
			out[field] = fmt.Sprintf("This value must be one of: %s", fe.Param())
		default:
			out[field] = "This value is not valid"
		}
	}
	return out
}

// respondBindingError reports per-field messages when the failure came from
// validation tags, a flat message otherwise.
func respondBindingError(c *gin.Context, err error) {
	if fields := bindingErrors(err); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}
