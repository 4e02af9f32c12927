package logger

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"time"
)

// buildLogEntry wraps one record in the Loki push API shape.
func buildLogEntry(job, level, message string, attrs []slog.Attr) map[string]interface{} {
	now := time.Now()
	return map[string]interface{}{
		"streams": []map[string]interface{}{
			{
				"stream": map[string]string{
					"level": level,
					"job":   job,
				},
				"values": [][]string{
					{
						strconv.FormatInt(now.UnixNano(), 10),
						buildLogLine(now, level, message, attrs),
					},
				},
			},
		},
	}
}

func buildLogLine(now time.Time, level, message string, attrs []slog.Attr) string {
	logData := map[string]interface{}{
		"level":   level,
		"message": message,
		"time":    now.Format(time.RFC3339),
	}

	for _, attr := range attrs {
		logData[attr.Key] = attr.Value.Any()
	}

	jsonBytes, _ := json.Marshal(logData)
	return string(jsonBytes)
}
