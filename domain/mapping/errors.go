package mapping

// Config error codes
const (
	CodeTimeColumnMissing = "TIME_COLUMN_MISSING"
	CodeNoValueColumns    = "NO_VALUE_COLUMNS"
	CodeColumnOutOfRange  = "COLUMN_OUT_OF_RANGE"
)

// ConfigError is one blocking selection problem. The engine returns these
// as a list so a caller can surface every problem at once instead of
// fixing them one round-trip at a time.
type ConfigError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e ConfigError) Error() string {
	return e.Message
}
