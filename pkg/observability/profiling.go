package observability

import (
	"runtime"

	"github.com/grafana/pyroscope-go"

	"video-edit-service/pkg/config"
	"video-edit-service/pkg/logger"
)

// StartProfiling attaches continuous profiling when enabled. Returns
// nil when profiling is off; callers may ignore the profiler entirely.
func StartProfiling(cfg config.ProfilingConfig, serviceName string) *pyroscope.Profiler {
	if !cfg.Enabled || cfg.ServerAddress == "" {
		return nil
	}

	runtime.SetMutexProfileFraction(5)
	runtime.SetBlockProfileRate(5)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: serviceName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          nil,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockCount,
			pyroscope.ProfileBlockDuration,
		},
	})
	if err != nil {
		logger.Warn("Profiling start failed", map[string]interface{}{
			"server": cfg.ServerAddress,
			"error":  err.Error(),
		})
		return nil
	}

	logger.Info("Continuous profiling started", map[string]interface{}{
		"server": cfg.ServerAddress,
	})
	return profiler
}

// StopProfiling flushes and stops a running profiler. Safe on nil.
func StopProfiling(profiler *pyroscope.Profiler) {
	if profiler == nil {
		return
	}
	if err := profiler.Stop(); err != nil {
		logger.Warn("Profiling stop failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
