package line

// textMessage is a single text entry in a push payload.
type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// pushRequest is the LINE Messaging API push body.
type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// errorResponse is the error shape the Messaging API returns on non-2xx.
type errorResponse struct {
	Message string `json:"message"`
}
