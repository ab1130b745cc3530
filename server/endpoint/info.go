package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicelist/version"
)

// started is captured at package init; close enough to process start.
var started = time.Now()

// InfoResponse is the /info payload.
type InfoResponse struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Release   bool   `json:"is_release"`
	Dirty     bool   `json:"is_dirty"`
	Uptime    string `json:"uptime"`
}

// Info reports build metadata for serviceName.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		c.JSON(http.StatusOK, InfoResponse{
			Service:   serviceName,
			Version:   v.Version,
			GitCommit: v.GitCommit,
			BuildTime: v.BuildTime,
			GoVersion: v.GoVersion,
			Release:   v.IsRelease,
			Dirty:     v.IsDirty,
			Uptime:    time.Since(started).Round(time.Second).String(),
		})
	}
}
