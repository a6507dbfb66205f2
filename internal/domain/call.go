package domain

import (
	"time"

	"github.com/onurcolak/smscountry-call-gateway/pkg/smscountry"
)

// CallRecord is a provider call record as stored in call_records.
type CallRecord struct {
	CallUUID      string     `db:"call_uuid" json:"callUuid"`
	Number        string     `db:"number" json:"number"`
	CallerID      string     `db:"caller_id" json:"callerId"`
	Status        string     `db:"status" json:"status"`
	RingTime      *time.Time `db:"ring_time" json:"ringTime,omitempty"`
	AnswerTime    *time.Time `db:"answer_time" json:"answerTime,omitempty"`
	EndTime       *time.Time `db:"end_time" json:"endTime,omitempty"`
	EndReason     string     `db:"end_reason" json:"endReason"`
	Cost          string     `db:"cost" json:"cost"`
	Direction     string     `db:"direction" json:"direction"`
	Pulse         string     `db:"pulse" json:"pulse"`
	Pulses        string     `db:"pulses" json:"pulses"`
	PricePerPulse string     `db:"price_per_pulse" json:"pricePerPulse"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

func NewCallRecord(d smscountry.CallDetails) CallRecord {
	return CallRecord{
		CallUUID:      d.CallUUID,
		Number:        d.Number,
		CallerID:      d.CallerID,
		Status:        d.Status,
		RingTime:      d.RingTime,
		AnswerTime:    d.AnswerTime,
		EndTime:       d.EndTime,
		EndReason:     d.EndReason,
		Cost:          d.Cost,
		Direction:     d.Direction,
		Pulse:         d.Pulse,
		Pulses:        d.Pulses,
		PricePerPulse: d.PricePerPulse,
	}
}

// TrackedCall is a call placed through the gateway that has not ended yet.
type TrackedCall struct {
	CallUUID    string    `json:"callUuid"`
	Number      string    `json:"number,omitempty"`
	APIID       string    `json:"apiId,omitempty"`
	InitiatedAt time.Time `json:"initiatedAt"`
}

type CallStats struct {
	ByStatus map[string]int64 `json:"byStatus"`
	Total    int64            `json:"total"`
}

// SyncResult is the outcome of refreshing one tracked call.
type SyncResult struct {
	CallUUID string
	Success  bool
	Ended    bool
	Error    error
}
