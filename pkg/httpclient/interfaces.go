package httpclient

import "context"

// Executor performs authenticated calls against the API base URL with path appended
// and returns the parsed JSON body. GET params travel in the query string, POST/PUT
// params in the request body.
type Executor interface {
	Get(ctx context.Context, path string, params Params) (Value, error)
	Post(ctx context.Context, path string, params Params) (Value, error)
	Put(ctx context.Context, path string, params Params) (Value, error)
}

// Logger is the structured logging surface shared by the module. The application
// logger in internal/logger aliases it so callers outside the module can plug in
// their own implementation.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return NopLogger{}
	}
	return log
}
