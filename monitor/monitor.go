package monitor

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"fire-department-api/config"
)

var startedAt = time.Now()

// RegisterStatusRoute exposes a JSON status endpoint with uptime and a
// database ping, for external uptime checks.
func RegisterStatusRoute(router *gin.Engine) {
	router.GET("/status", func(c *gin.Context) {
		dbOK := false
		if config.DB != nil {
			if sqlDB, err := config.DB.DB(); err == nil {
				dbOK = sqlDB.Ping() == nil
			}
		}

		c.JSON(200, gin.H{
			"status":         "ok",
			"uptime_seconds": int(time.Since(startedAt).Seconds()),
			"database":       dbOK,
		})
	})
}

// RegisterLogsRoute serves the raw log file behind a token query param.
func RegisterLogsRoute(router *gin.Engine) {
	router.GET("/logs", func(c *gin.Context) {
		token := os.Getenv("LOGS_ACCESS_TOKEN")
		if token == "" || c.Query("token") != token {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}

		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(500, gin.H{"error": "Unable to read log"})
			return
		}
		c.Data(200, "text/plain; charset=utf-8", logData)
	})
}

// RegisterMonitorPage serves a minimal live status page backed by the
// status and logs routes.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		c.Data(200, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Fire Department API Monitor</title>
  <style>
    body {
      background: #0f172a;
      color: #e2e8f0;
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      padding: 24px;
      max-width: 960px;
      margin: 0 auto;
    }
    h1 { color: #f87171; margin-bottom: 1rem; }
    .card {
      background: #1e293b;
      border: 1px solid #334155;
      border-radius: 8px;
      padding: 16px;
      margin-bottom: 16px;
    }
    pre {
      background: #020617;
      padding: 16px;
      border-radius: 8px;
      max-height: 480px;
      overflow-y: auto;
      white-space: pre-wrap;
      font-size: 0.85rem;
    }
  </style>
</head>
<body>
  <h1>Fire Department API</h1>
  <div class="card" id="status">Status: checking...</div>
  <div class="card"><pre id="logs">Waiting for logs...</pre></div>
  <script>
    function refreshStatus() {
      fetch('/status')
        .then(res => res.json())
        .then(data => {
          document.getElementById('status').textContent =
            'Status: ' + data.status +
            ' | uptime: ' + data.uptime_seconds + 's' +
            ' | database: ' + (data.database ? 'up' : 'down');
        })
        .catch(() => {
          document.getElementById('status').textContent = 'Status: offline';
        });
    }

    function refreshLogs() {
      const token = new URLSearchParams(window.location.search).get('token');
      if (!token) {
        document.getElementById('logs').textContent = 'Append ?token=... to view logs.';
        return;
      }
      fetch('/logs?token=' + encodeURIComponent(token))
        .then(res => res.text())
        .then(data => {
          const el = document.getElementById('logs');
          el.textContent = data;
          el.scrollTop = el.scrollHeight;
        });
    }

    refreshStatus();
    refreshLogs();
    setInterval(refreshStatus, 5000);
    setInterval(refreshLogs, 5000);
  </script>
</body>
</html>`))
	})
}
