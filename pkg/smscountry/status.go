package smscountry

import (
	"encoding/json"
)

const (
	defaultSuccessMessage = "Operation succeeded."
	defaultFailureMessage = "Operation failed."

	noDetailsMessage     = "No details included in response."
	noDetailsListMessage = "No list of call details included in response."
)

// Status is the outcome of a single provider operation.
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	APIID   string `json:"apiId,omitempty"`
}

func newStatus(success bool, message, apiID string) Status {
	if message == "" {
		if success {
			message = defaultSuccessMessage
		} else {
			message = defaultFailureMessage
		}
	}

	return Status{Success: success, Message: message, APIID: apiID}
}

// localFailure keeps the provider's ApiId but reports a problem detected
// while interpreting an otherwise successful response.
func (s Status) localFailure(message string) Status {
	return Status{Success: false, Message: message, APIID: s.APIID}
}

// envelope is the top-level object of every provider response. Everything
// but Success stays raw so that one odd field cannot hide the ApiId.
type envelope struct {
	Success   bool            `json:"Success"`
	Message   json.RawMessage `json:"Message"`
	APIID     json.RawMessage `json:"ApiId"`
	CallUUID  json.RawMessage `json:"CallUUID"`
	CallUUIDs json.RawMessage `json:"CallUUIDs"`
	Call      json.RawMessage `json:"Call"`
	Calls     json.RawMessage `json:"Calls"`
}

func (e envelope) status() Status {
	return newStatus(e.Success, scalarText(e.Message), scalarText(e.APIID))
}

// callUUID returns "" unless CallUUID is a non-empty JSON string.
func (e envelope) callUUID() string {
	var uuid string
	if err := json.Unmarshal(e.CallUUID, &uuid); err != nil {
		return ""
	}
	return uuid
}

// callUUIDs is false unless CallUUIDs is an array of non-empty strings.
func (e envelope) callUUIDs() ([]string, bool) {
	if !hasPayload(e.CallUUIDs) {
		return nil, false
	}

	var uuids []string
	if err := json.Unmarshal(e.CallUUIDs, &uuids); err != nil {
		return nil, false
	}
	for _, uuid := range uuids {
		if uuid == "" {
			return nil, false
		}
	}

	return uuids, true
}

// scalarText reads a string, number or bool as text. Objects and arrays
// read as empty.
func scalarText(raw json.RawMessage) string {
	var text textField
	if err := text.UnmarshalJSON(raw); err != nil {
		return ""
	}
	return string(text)
}

// hasPayload reports whether a raw payload field was present and not null.
func hasPayload(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
