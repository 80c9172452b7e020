package public

import (
	handlershared "github.com/blog-console/internal/http/handlers/shared"
	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondServiceError(c *gin.Context, err error, fallbackKey string, overrides ...handlershared.ErrorRule) {
	handlershared.RespondServiceError(c, err, fallbackKey, overrides...)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.CurrentUserID(c)
}

func getActor(c *gin.Context) (service.Actor, bool) {
	return handlershared.CurrentActor(c)
}

func parseID(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseIDParam(c, name)
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	return handlershared.BindJSON(c, dest)
}

func successWithPage(c *gin.Context, data interface{}, page, limit int, total int64) {
	response.SuccessWithPage(c, data, response.NewPagination(page, limit, total))
}
