package api

import (
	"encoding/json"
	"net/http"
	"runtime"
)

type buildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// VersionHandler serves build metadata stamped in via ldflags. The payload
// never changes for the life of the process, so it is rendered once.
func VersionHandler(version, gitCommit, buildDate string) http.Handler {
	info := buildInfo{
		Version:   fallback(version, "dev"),
		GitCommit: fallback(gitCommit, "unknown"),
		BuildDate: fallback(buildDate, "unknown"),
		GoVersion: runtime.Version(),
	}
	body, _ := json.Marshal(info)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
