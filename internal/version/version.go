package version

import "fmt"

// Заполняются при сборке через -ldflags:
//
//	-X minimarket/internal/version.version=v1.2.3
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// BuildInfo — сведения о сборке бинарника.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Current возвращает сведения о текущей сборке.
func Current() BuildInfo {
	return BuildInfo{Version: version, Commit: commit, Date: date}
}

// Info возвращает версию, коммит и дату сборки по отдельности.
func Info() (v, c, d string) { return version, commit, date }

// String форматирует сведения о сборке одной строкой для логов.
func String() string {
	return Current().format()
}

func (b BuildInfo) format() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", b.Version, b.Commit, b.Date)
}
