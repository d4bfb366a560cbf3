package logger

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
)

var _ log.Logger = (*kratosLogger)(nil)

// kratosLogger 将 logrus 适配为 kratos log.Logger，服务端中间件与业务组件共用同一个输出
type kratosLogger struct {
	log *logrus.Logger
}

// NewKratos 包装 logrus 实例
func NewKratos(l *logrus.Logger) log.Logger {
	return &kratosLogger{log: l}
}

// Log 实现 kratos log.Logger 接口
func (k *kratosLogger) Log(level log.Level, keyvals ...interface{}) error {
	lvl := toLogrusLevel(level)
	if !k.log.IsLevelEnabled(lvl) {
		return nil
	}
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "KEYVALS UNPAIRED")
	}

	var msg string
	fields := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if key == log.DefaultMessageKey {
			msg = fmt.Sprint(keyvals[i+1])
			continue
		}
		fields[key] = keyvals[i+1]
	}

	k.log.WithFields(fields).Log(lvl, msg)
	return nil
}

func toLogrusLevel(level log.Level) logrus.Level {
	switch level {
	case log.LevelDebug:
		return logrus.DebugLevel
	case log.LevelWarn:
		return logrus.WarnLevel
	case log.LevelError:
		return logrus.ErrorLevel
	case log.LevelFatal:
		// kratos 的 Fatal 由 Helper 自行退出，这里只记录
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
