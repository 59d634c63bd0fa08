package middlewares

// Keys used with gin.Context.Set/Get.
const (
	CtxRequestID = "request_id"
	ctxUserIDKey = "auth.userID"
	ctxEmailKey  = "auth.email"
)
