package server

// SelectionRequest places a selection in a document of the project. Path is
// absolute or relative to the project directory.
type SelectionRequest struct {
	Path   string `json:"path" binding:"required"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// ActionsResponse lists the actions offered for a selection.
type ActionsResponse struct {
	Document string       `json:"document"`
	Actions  []ActionInfo `json:"actions"`
}

// ActionInfo describes one offered action. Index is 1-based and can be
// passed back as the action of an ApplyRequest.
type ActionInfo struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Target string `json:"target"`
}

// ApplyRequest runs one of the actions offered for a selection.
type ApplyRequest struct {
	SelectionRequest
	// Action is an index or a title, as listed by the actions endpoint.
	Action string `json:"action" binding:"required"`
	DryRun bool   `json:"dry_run"`
}

// ApplyResponse reports what an action changed.
type ApplyResponse struct {
	Action  string       `json:"action"`
	Target  string       `json:"target"`
	Applied bool         `json:"applied"`
	Changes []ChangeInfo `json:"changes"`
}

// ChangeInfo is one changed document. Diff is set for dry runs only.
type ChangeInfo struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
	Diff string `json:"diff,omitempty"`
}

// HealthResponse reports the loaded project.
type HealthResponse struct {
	Status    string `json:"status"`
	Project   string `json:"project"`
	Documents int    `json:"documents"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
