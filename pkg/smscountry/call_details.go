package smscountry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// CallDetails is one call record as reported by the provider.
type CallDetails struct {
	CallUUID      string     `json:"callUuid"`
	Number        string     `json:"number"`
	CallerID      string     `json:"callerId"`
	Status        string     `json:"status"`
	RingTime      *time.Time `json:"ringTime,omitempty"`
	AnswerTime    *time.Time `json:"answerTime,omitempty"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	EndReason     string     `json:"endReason"`
	Cost          string     `json:"cost"`
	Direction     string     `json:"direction"`
	Pulse         string     `json:"pulse"`
	Pulses        string     `json:"pulses"`
	PricePerPulse string     `json:"pricePerPulse"`
}

// Ended reports whether the provider has recorded an end time for the call.
func (d CallDetails) Ended() bool {
	return d.EndTime != nil
}

// callRecord mirrors the provider's wire shape.
type callRecord struct {
	CallUUID      textField `json:"CallUUID"`
	Number        textField `json:"Number"`
	CallerID      textField `json:"CallerId"`
	Status        textField `json:"Status"`
	RingTime      textField `json:"RingTime"`
	AnswerTime    textField `json:"AnswerTime"`
	EndTime       textField `json:"EndTime"`
	EndReason     textField `json:"EndReason"`
	Cost          textField `json:"Cost"`
	Direction     textField `json:"Direction"`
	Pulse         textField `json:"Pulse"`
	Pulses        textField `json:"Pulses"`
	PricePerPulse textField `json:"PricePerPulse"`
}

func (r callRecord) details() CallDetails {
	return CallDetails{
		CallUUID:      string(r.CallUUID),
		Number:        string(r.Number),
		CallerID:      string(r.CallerID),
		Status:        string(r.Status),
		RingTime:      parseEpoch(string(r.RingTime)),
		AnswerTime:    parseEpoch(string(r.AnswerTime)),
		EndTime:       parseEpoch(string(r.EndTime)),
		EndReason:     string(r.EndReason),
		Cost:          string(r.Cost),
		Direction:     string(r.Direction),
		Pulse:         string(r.Pulse),
		Pulses:        string(r.Pulses),
		PricePerPulse: string(r.PricePerPulse),
	}
}

// decodeCallDetails decodes a single provider call object. It fails only when
// raw is not a JSON object.
func decodeCallDetails(raw json.RawMessage) (*CallDetails, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("call details must be a JSON object, got %.20q", trimmed)
	}

	var rec callRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}

	details := rec.details()
	return &details, nil
}

// decodeCallDetailsList keeps provider order and returns an empty, non-nil
// slice for an empty array.
func decodeCallDetailsList(raw json.RawMessage) ([]CallDetails, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}

	list := make([]CallDetails, 0, len(elems))
	for i, elem := range elems {
		details, err := decodeCallDetails(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		list = append(list, *details)
	}

	return list, nil
}

// textField accepts a JSON string, number or bool and keeps its text.
// The provider documents every field as a string but is not consistent
// about it.
type textField string

func (t *textField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = textField(s)
		return nil
	}

	if data[0] == '{' || data[0] == '[' {
		return fmt.Errorf("cannot read %q as text", data[:1])
	}

	*t = textField(data)
	return nil
}

// Epoch seconds outside years 1 through 9999 are not real call times.
const (
	minEpochSeconds = -62135596800
	maxEpochSeconds = 253402300799
)

// parseEpoch converts an epoch-seconds string to a UTC time. Anything it
// cannot read, or that falls outside years 1 through 9999, yields nil.
func parseEpoch(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	secs, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		if secs < minEpochSeconds || secs > maxEpochSeconds {
			return nil
		}
		t := time.Unix(secs, 0).UTC()
		return &t
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f < minEpochSeconds || f > maxEpochSeconds {
		return nil
	}

	whole, frac := math.Modf(f)
	t := time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC()
	return &t
}
