package diag

import (
	"context"
	"sort"

	"github.com/jonwraymond/clawstrap/observe"
)

// Report logs one line per result: healthy at INFO, everything else at WARN.
func Report(ctx context.Context, log observe.Logger, results []Result) {
	for _, res := range results {
		fields := []observe.Field{
			{Key: "check", Value: res.Name},
			{Key: "status", Value: res.Status.String()},
			{Key: "duration", Value: res.Duration.String()},
		}

		keys := make([]string, 0, len(res.Details))
		for k := range res.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fields = append(fields, observe.Field{Key: k, Value: res.Details[k]})
		}

		if res.Error != nil {
			fields = append(fields, observe.Field{Key: "error", Value: res.Error.Error()})
		}

		if res.Status == StatusHealthy {
			log.Info(ctx, res.Message, fields...)
		} else {
			log.Warn(ctx, res.Message, fields...)
		}
	}
}
