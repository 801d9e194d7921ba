package logger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"
)

// LogLevel represents logging severity level
type LogLevel string

const (
	LogLevelDEBUG LogLevel = "DEBUG"
	LogLevelINFO  LogLevel = "INFO"
	LogLevelWARN  LogLevel = "WARN"
	LogLevelERROR LogLevel = "ERROR"
)

// EventCode represents structured event types
type EventCode string

const (
	EventAPIRequest  EventCode = "API_REQUEST"
	EventAPIResponse EventCode = "API_RESPONSE"
	EventFileUpload  EventCode = "FILE_UPLOAD"
	EventFileUpdate  EventCode = "FILE_UPDATE"
	EventFileRevert  EventCode = "FILE_REVERT"
	EventFileDelete  EventCode = "FILE_DELETE"
	EventShareCreate EventCode = "SHARE_CREATE"
	EventShareRedeem EventCode = "SHARE_REDEEM"
	EventSystemStart EventCode = "SYSTEM_START"
	EventSystemStop  EventCode = "SYSTEM_STOP"
	EventError       EventCode = "ERROR"
)

// StructuredLog is the persisted log record format
type StructuredLog struct {
	Timestamp      string                 `json:"timestamp"`
	Level          LogLevel               `json:"level"`
	EventCode      EventCode              `json:"event_code"`
	Message        string                 `json:"message"`
	Details        map[string]interface{} `json:"details"`
	Hostname       string                 `json:"hostname"`
	RequestID      string                 `json:"request_id,omitempty"`
	Actor          string                 `json:"actor,omitempty"`
	SourceLocation string                 `json:"source_location"`
}

// Logger writes structured logs to stdout and the audit table
type Logger struct {
	db       *sql.DB
	hostname string
}

var defaultLogger *Logger

// InitLogger initializes the default logger. db may be nil (stdout only).
func InitLogger(db *sql.DB) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	defaultLogger = &Logger{db: db, hostname: hostname}
	return nil
}

// GetLogger returns the default logger
func GetLogger() *Logger {
	return defaultLogger
}

// LogAPIRequest records an API request event
func (l *Logger) LogAPIRequest(method, path, remoteAddr, requestID, actor string) {
	details := map[string]interface{}{
		"method":      method,
		"path":        path,
		"remote_addr": remoteAddr,
	}
	l.log(LogLevelINFO, EventAPIRequest, fmt.Sprintf("API request: %s %s", method, path), details, requestID, actor)
}

// LogAPIResponse records an API response event
func (l *Logger) LogAPIResponse(method, path string, statusCode int, responseTime time.Duration, requestID, actor string) {
	details := map[string]interface{}{
		"method":        method,
		"path":          path,
		"status_code":   statusCode,
		"response_time": responseTime.Milliseconds(),
	}

	level := LogLevelINFO
	if statusCode >= 400 {
		level = LogLevelWARN
	}
	if statusCode >= 500 {
		level = LogLevelERROR
	}

	l.log(level, EventAPIResponse, fmt.Sprintf("API response: %s %s [%d] (%dms)", method, path, statusCode, responseTime.Milliseconds()), details, requestID, actor)
}

// LogFileEvent records a file lifecycle event (upload, update, revert, delete)
func (l *Logger) LogFileEvent(event EventCode, fileID, actor string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["file_id"] = fileID
	l.log(LogLevelINFO, event, fmt.Sprintf("%s: %s by %s", event, fileID, actor), details, "", actor)
}

// LogShareEvent records share issuance or redemption
func (l *Logger) LogShareEvent(event EventCode, shareID string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["share_id"] = shareID
	l.log(LogLevelINFO, event, fmt.Sprintf("%s: %s", event, shareID), details, "", "")
}

// LogError records an error event with optional error payload
func (l *Logger) LogError(message string, err error, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	if err != nil {
		details["error"] = err.Error()
	}
	l.log(LogLevelERROR, EventError, message, details, "", "")
}

// Info records a generic informational event
func (l *Logger) Info(event EventCode, message string, details map[string]interface{}) {
	l.log(LogLevelINFO, event, message, details, "", "")
}

// log writes a structured record to stdout and persists it to the audit table
func (l *Logger) log(level LogLevel, eventCode EventCode, message string, details map[string]interface{}, requestID, actor string) {
	_, file, line, ok := runtime.Caller(2)
	sourceLocation := "unknown"
	if ok {
		parts := strings.Split(file, "/")
		sourceLocation = fmt.Sprintf("%s:%d", parts[len(parts)-1], line)
	}

	record := StructuredLog{
		Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
		Level:          level,
		EventCode:      eventCode,
		Message:        message,
		Details:        details,
		Hostname:       l.hostname,
		RequestID:      requestID,
		Actor:          actor,
		SourceLocation: sourceLocation,
	}

	logJSON, _ := json.Marshal(record)
	log.Printf("%s", string(logJSON))

	l.saveToDatabase(record)
}

func (l *Logger) saveToDatabase(record StructuredLog) {
	if l.db == nil {
		return
	}

	detailsJSON, _ := json.Marshal(record.Details)

	insertSQL := `
	INSERT INTO audit_logs (timestamp, level, event_code, message, details, hostname, request_id, actor)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := l.db.Exec(insertSQL,
		record.Timestamp, record.Level, record.EventCode, record.Message,
		string(detailsJSON), record.Hostname, record.RequestID, record.Actor)
	if err != nil {
		log.Printf("Failed to save log to database: %v", err)
	}
}

// GetAuditLogs loads recent audit records, newest first
func (l *Logger) GetAuditLogs(limit, offset int) ([]StructuredLog, error) {
	querySQL := `
	SELECT timestamp, level, event_code, message, details, hostname, request_id, actor
	FROM audit_logs
	ORDER BY timestamp DESC
	LIMIT ? OFFSET ?`

	rows, err := l.db.Query(querySQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []StructuredLog
	for rows.Next() {
		var rec StructuredLog
		var detailsJSON string
		var requestID, actor sql.NullString

		err := rows.Scan(&rec.Timestamp, &rec.Level, &rec.EventCode, &rec.Message,
			&detailsJSON, &rec.Hostname, &requestID, &actor)
		if err != nil {
			continue
		}
		if detailsJSON != "" {
			_ = json.Unmarshal([]byte(detailsJSON), &rec.Details)
		}
		rec.RequestID = requestID.String
		rec.Actor = actor.String
		logs = append(logs, rec)
	}
	return logs, rows.Err()
}
