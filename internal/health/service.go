package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"estates-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const (
	statusConnected    = "connected"
	statusDisabled     = "disabled"
	statusError        = "error"
	statusReachable    = "reachable"
	statusUnreachable  = "unreachable"
	statusUnconfigured = "unconfigured"
)

// DBPinger is the admin accounts database. Nil means auth is disabled.
type DBPinger interface {
	Ping() error
}

// APIProbe is the remote estates API.
type APIProbe interface {
	Configured() bool
	GetAllEstates(ctx context.Context) (json.RawMessage, error)
}

// CollectResult is the /health/json payload minus the service name.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	AllocMB  int `json:"allocMb"`
	HeapInMB int `json:"heapInUseMb"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// CollectHealth probes the database, Redis and the estates API and reads the
// traffic counters kept by middleware.HealthMarker. Status is "ok" when
// every enabled dependency answers, "issue" otherwise. An unconfigured
// estates API does not count as an issue since listings fall back to samples.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger, api APIProbe) CollectResult {
	result := CollectResult{Dependencies: make(map[string]DepStatus)}
	healthy := true

	dbDep := DepStatus{Status: statusDisabled}
	if db != nil {
		dbDep = timed(func() error { return db.Ping() }, statusConnected, statusError)
		healthy = healthy && dbDep.Status == statusConnected
	}
	result.Dependencies["database"] = dbDep

	startTimeMs := time.Now().UnixMilli()
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	redisDep := DepStatus{Status: statusDisabled}
	if rdb != nil {
		redisDep = timed(func() error { return rdb.Ping(ctx).Err() }, statusConnected, statusError)
		healthy = healthy && redisDep.Status == statusConnected
		if redisDep.Status == statusConnected {
			stats, startTimeMs = readTraffic(ctx, rdb, startTimeMs)
		}
	}
	result.Dependencies["redis"] = redisDep

	apiDep := DepStatus{Status: statusUnconfigured}
	if api != nil && api.Configured() {
		apiDep = timed(func() error {
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			_, err := api.GetAllEstates(pctx)
			return err
		}, statusReachable, statusUnreachable)
		healthy = healthy && apiDep.Status == statusReachable
	}
	result.Dependencies["estatesApi"] = apiDep

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptimeSec := (time.Now().UnixMilli() - startTimeMs) / 1000
	if uptimeSec < 0 {
		uptimeSec = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptimeSec,
		Memory:        MemoryInfo{AllocMB: int(m.Alloc / 1024 / 1024), HeapInMB: int(m.HeapInuse / 1024 / 1024)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}
	result.Traffic = stats

	result.Status = "issue"
	if healthy {
		result.Status = "ok"
	}
	return result
}

func timed(probe func() error, okStatus, failStatus string) DepStatus {
	start := time.Now()
	if err := probe(); err != nil {
		return DepStatus{Status: failStatus}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: okStatus, PingMs: &ms}
}

func readTraffic(ctx context.Context, rdb *redis.Client, nowMs int64) (TrafficInfo, int64) {
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	vals, err := rdb.MGet(ctx,
		middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime,
		middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq,
	).Result()
	if err != nil {
		return stats, nowMs
	}
	str := func(i int) string {
		s, _ := vals[i].(string)
		return s
	}

	startTimeMs := nowMs
	if t, err := strconv.ParseInt(str(4), 10, 64); err == nil {
		startTimeMs = t
	} else {
		rdb.Set(ctx, middleware.KeyStartTime, nowMs, 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(str(0))
	stats.FailedCount, _ = strconv.Atoi(str(1))
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(str(2), 64)
	countSum, _ := strconv.Atoi(str(3))
	if countSum > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(countSum), 'f', 2, 64)
	}
	if s := str(5); s != "" {
		var lastReq map[string]interface{}
		_ = json.Unmarshal([]byte(s), &lastReq)
		stats.LastRequest = lastReq
	}
	return stats, startTimeMs
}
