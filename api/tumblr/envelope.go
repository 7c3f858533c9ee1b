package tumblr

// Every v2 API response is wrapped in this envelope. Only the "response" payload is handed to callers; "meta" and "errors" feed error handling.
type Response[T any] struct {
	Meta     ResponseStatus  `json:"meta"`
	Response T               `json:"response"`
	Errors   []ResponseError `json:"errors,omitempty"`
}

type ResponseStatus struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}

type ResponseError struct {
	Title  string `json:"title"`
	Code   int    `json:"code"`
	Detail string `json:"detail"`
}

// Pagination links, as included with paged responses under "_links".
type Links struct {
	Next *LinkRef `json:"next,omitempty"`
	Prev *LinkRef `json:"prev,omitempty"`
}

type LinkRef struct {
	Href        string         `json:"href"`
	Method      string         `json:"method,omitempty"`
	QueryParams map[string]any `json:"query_params,omitempty"`
}
