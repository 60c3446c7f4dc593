package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/ougirez/agreste/internal/pkg/constants"
	"github.com/ougirez/agreste/internal/pkg/logger"
	"github.com/ougirez/agreste/internal/pkg/utils"
)

// RequestIDMiddleware tags the request context logger with an id, taken from
// X-Request-ID when the client sent one.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx.Set(constants.CtxKeyRequestID, id)
		ctx.Response().Header().Set(echo.HeaderXRequestID, id)
		ctx.SetRequest(ctx.Request().WithContext(logger.With(ctx.Request().Context(), constants.CtxKeyRequestID, id)))

		return next(ctx)
	}
}

func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrMissingAuthCookie
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		secret := viper.GetString(constants.ViperSecretKey)
		if secret == "" || token.Secret != secret {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}
