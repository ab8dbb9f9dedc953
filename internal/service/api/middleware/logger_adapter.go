package middleware

import (
	"io"

	"github.com/labstack/gommon/log"

	applog "github.com/toonkeep/toonkeep-server/pkg/log"
)

// Logger Echo가 요구하는 gommon의 log.Logger 인터페이스를
// logrus 기반 애플리케이션 로거에 연결하는 어댑터입니다.
//
// Echo 내부에서 발생하는 로그(저수준 오류 등)도 애플리케이션 로그와
// 동일한 출력, 포맷, 레벨 정책을 따르게 됩니다.
type Logger struct {
	*applog.Logger
}

// 두 로깅 시스템 간 레벨 대응표
var (
	toEchoLevel = map[applog.Level]log.Lvl{
		applog.DebugLevel: log.DEBUG,
		applog.InfoLevel:  log.INFO,
		applog.WarnLevel:  log.WARN,
		applog.ErrorLevel: log.ERROR,
	}
	fromEchoLevel = map[log.Lvl]applog.Level{
		log.DEBUG: applog.DebugLevel,
		log.INFO:  applog.InfoLevel,
		log.WARN:  applog.WarnLevel,
		log.ERROR: applog.ErrorLevel,
	}
)

func (l Logger) Output() io.Writer     { return l.Logger.Out }
func (l Logger) SetOutput(w io.Writer) { l.Logger.SetOutput(w) }

// Echo의 Prefix/Header 기능은 사용하지 않습니다.
func (l Logger) Prefix() string   { return "" }
func (l Logger) SetPrefix(string) {}
func (l Logger) SetHeader(string) {}

// Level 애플리케이션 로그 레벨을 Echo의 로그 레벨로 변환합니다.
// 대응표에 없는 레벨(Fatal, Panic 등)은 OFF로 취급합니다.
func (l Logger) Level() log.Lvl {
	if lvl, ok := toEchoLevel[l.Logger.Level]; ok {
		return lvl
	}
	return log.OFF
}

// SetLevel Echo의 로그 레벨을 애플리케이션 로그 레벨로 변환하여 설정합니다.
// 대응하는 레벨이 없으면(OFF 등) 현재 레벨을 유지합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	if mapped, ok := fromEchoLevel[lvl]; ok {
		l.Logger.SetLevel(mapped)
	}
}

// entry gommon의 JSON 필드를 구조화 로그 Entry로 변환합니다.
func (l Logger) entry(j log.JSON) *applog.Entry {
	return l.Logger.WithFields(applog.Fields(j))
}

func (l Logger) Print(i ...interface{}) { l.Logger.Print(i...) }
func (l Logger) Printf(format string, i ...interface{}) { l.Logger.Printf(format, i...) }
func (l Logger) Printj(j log.JSON) { l.entry(j).Print() }

func (l Logger) Debug(i ...interface{}) { l.Logger.Debug(i...) }
func (l Logger) Debugf(format string, i ...interface{}) { l.Logger.Debugf(format, i...) }
func (l Logger) Debugj(j log.JSON) { l.entry(j).Debug() }

func (l Logger) Info(i ...interface{}) { l.Logger.Info(i...) }
func (l Logger) Infof(format string, i ...interface{}) { l.Logger.Infof(format, i...) }
func (l Logger) Infoj(j log.JSON) { l.entry(j).Info() }

func (l Logger) Warn(i ...interface{}) { l.Logger.Warn(i...) }
func (l Logger) Warnf(format string, i ...interface{}) { l.Logger.Warnf(format, i...) }
func (l Logger) Warnj(j log.JSON) { l.entry(j).Warn() }

func (l Logger) Error(i ...interface{}) { l.Logger.Error(i...) }
func (l Logger) Errorf(format string, i ...interface{}) { l.Logger.Errorf(format, i...) }
func (l Logger) Errorj(j log.JSON) { l.entry(j).Error() }

func (l Logger) Fatal(i ...interface{}) { l.Logger.Fatal(i...) }
func (l Logger) Fatalf(format string, i ...interface{}) { l.Logger.Fatalf(format, i...) }
func (l Logger) Fatalj(j log.JSON) { l.entry(j).Fatal() }

func (l Logger) Panic(i ...interface{}) { l.Logger.Panic(i...) }
func (l Logger) Panicf(format string, i ...interface{}) { l.Logger.Panicf(format, i...) }
func (l Logger) Panicj(j log.JSON) { l.entry(j).Panic() }
