package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// ID accepts both JSON strings and numbers; the backend is not consistent.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Int is used for numeric path segments the backend expects as integers.
func (id ID) Int() (int64, error) { return strconv.ParseInt(string(id), 10, 64) }

type Sport struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Gender      string `json:"gender,omitempty"`
	MaxTeamSize int    `json:"maxTeamSize,omitempty"`
	Fee         int    `json:"fee,omitempty"`
}

type College struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

type Registration struct {
	ID            ID            `json:"id"`
	StudentName   string        `json:"studentName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	CollegeID     ID            `json:"collegeId"`
	CollegeName   string        `json:"collegeName,omitempty"`
	SportIDs      []ID          `json:"sportIds"`
	TransactionID string        `json:"transactionId"`
	ScreenshotURL string        `json:"screenshotUrl,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type User struct {
	ID              ID     `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	AssignedSportID ID     `json:"assignedSportId,omitempty"`
}

type Team struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	SportID     ID     `json:"sportId"`
	CollegeName string `json:"collegeName,omitempty"`
	Players     int    `json:"players,omitempty"`
}

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
)

type Match struct {
	ID       ID          `json:"id"`
	SportID  ID          `json:"sportId"`
	Sport    string      `json:"sportName,omitempty"`
	TeamA    string      `json:"teamA"`
	TeamB    string      `json:"teamB"`
	ScoreA   int         `json:"scoreA"`
	ScoreB   int         `json:"scoreB"`
	Status   MatchStatus `json:"status"`
	Venue    string      `json:"venue,omitempty"`
	StartsAt time.Time   `json:"startsAt"`
}
