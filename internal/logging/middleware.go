package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// Middleware attaches a fresh LogData to every huma request and emits the
// Handler.<operation>.Start/Complete/Error log pair around it.
func Middleware(log *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		name := ctx.Operation().OperationID
		logData := NewLogData(log)

		log.Infof("Handler.%v.Start", name)

		endTimer := logData.AddTiming("duration")
		next(huma.WithValue(ctx, logDataKey{}, logData))
		endTimer()

		if status := ctx.Status(); status >= 500 {
			logData.Log().WithField("status", status).Errorf("Handler.%v.Error", name)
			return
		}
		logData.Log().WithField("status", ctx.Status()).Infof("Handler.%v.Complete", name)
	}
}
