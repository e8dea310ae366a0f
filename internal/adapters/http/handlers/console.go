package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/http/dto"
)

// respond writes data as a success envelope, or maps err to a failure one.
func respond(c *gin.Context, data any, err error) {
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.OK(c, data)
}

// bindJSON binds and validates the body into v, writing a 400 envelope on
// failure. It reports whether the handler should continue.
func bindJSON(c *gin.Context, v any) bool {
	if err := dto.BindAndValidate(c, v); err != nil {
		dto.HandleBindError(c, err)
		return false
	}

	return true
}

// bindList binds the list query, writing a 400 envelope on failure.
func bindList(c *gin.Context) (dto.ListQuery, bool) {
	var q dto.ListQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.HandleBindError(c, err)
		return q, false
	}

	return q, true
}

// bindIDs reads id/ids from the query, writing a 400 envelope on failure.
func bindIDs(c *gin.Context) ([]int64, bool) {
	ids, err := dto.BindIDs(c)
	if err != nil {
		dto.HandleBindError(c, err)
		return nil, false
	}

	return ids, true
}
