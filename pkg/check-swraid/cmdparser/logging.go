package cmdparser

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/check-swraid/pkg/check-swraid/definitions"
)

// setupLogging sends logs to out. Only --verbose 2 produces any output,
// the report line on stdout is the plugin's only output otherwise.
func setupLogging(verbose int, out io.Writer) {
	log.SetOutput(out)
	log.SetLevel(log.FatalLevel)
	if verbose >= definitions.VerboseDebug {
		log.SetLevel(log.DebugLevel)
	}

	log.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
		// log with funcname, file fileds. eg: func=ListArrays file="mdadm.go:43"
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			s := strings.Split(f.Function, ".")
			funcname := s[len(s)-1]
			filename := path.Base(f.File)
			return funcname, fmt.Sprintf("%s:%d", filename, f.Line)
		},
	})
	log.SetReportCaller(true)
}
