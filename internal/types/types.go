package types

// Post is one entry of the remote posts collection
type Post struct {
	ID     int    `json:"id" yaml:"id"`
	UserID int    `json:"userId,omitempty" yaml:"userId,omitempty"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
}

// Draft is the title/body buffer behind the add and edit forms
type Draft struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// IsEmpty reports whether both fields are blank
func (d Draft) IsEmpty() bool {
	return d.Title == "" && d.Body == ""
}

// FetchRequest describes one remote read
type FetchRequest struct {
	Name    string            `json:"name,omitempty"`
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

// FetchResult represents the outcome of one remote read
type FetchResult struct {
	Status       int               `json:"status"`
	StatusText   string            `json:"statusText"`
	Headers      map[string]string `json:"headers"`
	Body         string            `json:"body"`
	Duration     int64             `json:"duration"`     // milliseconds
	ResponseSize int               `json:"responseSize"` // bytes
	Error        string            `json:"error,omitempty"`
}

// HistoryEntry represents one logged remote read
type HistoryEntry struct {
	ID             int64  `json:"id" yaml:"id"`
	Timestamp      string `json:"timestamp" yaml:"timestamp"`
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	Method         string `json:"method" yaml:"method"`
	URL            string `json:"url" yaml:"url"`
	ResponseStatus int    `json:"responseStatus" yaml:"responseStatus"`
	Duration       int64  `json:"duration" yaml:"duration"`
	ResponseSize   int    `json:"responseSize,omitempty" yaml:"responseSize,omitempty"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
}

// TLSConfig holds TLS options for the HTTP transport
type TLSConfig struct {
	CertFile           string `json:"certFile,omitempty"`
	KeyFile            string `json:"keyFile,omitempty"`
	CAFile             string `json:"caFile,omitempty"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty"`
}
