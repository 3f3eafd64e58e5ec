package event

// pushPayload is the subset of the push webhook payload the resolver needs.
type pushPayload struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// pullRequestPayload is the subset of the pull_request webhook payload the
// resolver needs.
type pullRequestPayload struct {
	PullRequest struct {
		Base struct {
			SHA string `json:"sha"`
		} `json:"base"`
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
}
