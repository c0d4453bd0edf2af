package commands

import (
	"cmdbus/internal/core/domain"
	"cmdbus/internal/core/domain/command"
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"

	"github.com/rs/zerolog"
)

const kb = 1024
const debugTemplate = `allocated mem: %d KB
goroutines running: %d
heap: %d KB
stack: %d KB
compiled with %s for %s-%s`
const metricCount = 3

type Debug struct{}

func NewDebug(id string) *command.Handler[Debug] {
	return command.NewHandler(id, handleDebug(id), domain.Constructor{
		Build: func(_ domain.Args) domain.Command {
			return Debug{}
		},
	})
}

func handleDebug(id string) command.Func[Debug] {
	return func(ctx context.Context, _ Debug, result *domain.Result) error {
		l := requestLogger(ctx, id)

		l.Info().Msg("handling request")

		reportRuntime(l, result)
		return nil
	}
}

func reportRuntime(l zerolog.Logger, result *domain.Result) {
	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/heap/stacks:bytes"}
	data[2] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	for _, sample := range data {
		l.Debug().Str("name", sample.Name).Uint64("value", sample.Value.Uint64()).Msg("runtime metric")
	}

	goos, goarch := runtime.GOOS, runtime.GOARCH
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	result.Put(fmt.Sprintf(
		debugTemplate,
		data[2].Value.Uint64()/kb,
		runtime.NumGoroutine(),
		data[0].Value.Uint64()/kb,
		data[1].Value.Uint64()/kb,
		runtime.Version(), goos, goarch,
	))
}
