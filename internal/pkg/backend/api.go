package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
)

// LoginResult is what the backend hands back for valid credentials.
type LoginResult struct {
	Token           string    `json:"token"`
	Role            string    `json:"role"`
	AssignedSportID models.ID `json:"assignedSportId,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	err := c.postJSON(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("login response without token")
	}
	return &res, nil
}

func (c *Client) Sports(ctx context.Context) ([]models.Sport, error) {
	var out []models.Sport
	if err := c.get(ctx, "/sports", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Sport(ctx context.Context, id string) (*models.Sport, error) {
	var out models.Sport
	if err := c.get(ctx, "/sports/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Colleges(ctx context.Context) ([]models.College, error) {
	var out []models.College
	if err := c.get(ctx, "/colleges", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegistrationFilter narrows the registrations listing; zero values are ignored.
type RegistrationFilter struct {
	PaymentStatus models.PaymentStatus
	SportID       string
}

func (c *Client) Registrations(ctx context.Context, f RegistrationFilter) ([]models.Registration, error) {
	q := url.Values{}
	if f.PaymentStatus != "" {
		q.Set("paymentStatus", string(f.PaymentStatus))
	}
	if f.SportID != "" {
		q.Set("sportId", f.SportID)
	}
	var out []models.Registration
	if err := c.get(ctx, "/registrations", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewRegistration is a validated form submission plus its payment screenshot.
type NewRegistration struct {
	StudentName   string
	Email         string
	Phone         string
	CollegeID     string
	SportIDs      []string
	TransactionID string

	ScreenshotName string
	ScreenshotType string
	Screenshot     []byte
}

func (c *Client) CreateRegistration(ctx context.Context, reg NewRegistration) (*models.Registration, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"studentName":   reg.StudentName,
		"email":         reg.Email,
		"phone":         reg.Phone,
		"collegeId":     reg.CollegeID,
		"transactionId": reg.TransactionID,
		"sportIds":      strings.Join(reg.SportIDs, ","),
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="paymentScreenshot"; filename=%q`, reg.ScreenshotName))
	h.Set("Content-Type", reg.ScreenshotType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create screenshot part: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(reg.Screenshot)); err != nil {
		return nil, fmt.Errorf("write screenshot: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	var out models.Registration
	if err := c.postRaw(ctx, "/registrations", mw.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyPayment(ctx context.Context, registrationID string, status models.PaymentStatus, note string) error {
	return c.postJSON(ctx, "/payments/"+url.PathEscape(registrationID)+"/verify", map[string]string{
		"status": string(status),
		"note":   note,
	}, nil)
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Teams(ctx context.Context, sportID string) ([]models.Team, error) {
	q := url.Values{}
	if sportID != "" {
		q.Set("sportId", sportID)
	}
	var out []models.Team
	if err := c.get(ctx, "/teams", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MatchFilter narrows the matches listing; zero values are ignored.
type MatchFilter struct {
	SportID string
	Status  models.MatchStatus
}

func (c *Client) Matches(ctx context.Context, f MatchFilter) ([]models.Match, error) {
	q := url.Values{}
	if f.SportID != "" {
		q.Set("sportId", f.SportID)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	var out []models.Match
	if err := c.get(ctx, "/matches", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type NewMatch struct {
	SportID  string    `json:"sportId"`
	TeamAID  string    `json:"teamAId"`
	TeamBID  string    `json:"teamBId"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"startsAt"`
}

func (c *Client) CreateMatch(ctx context.Context, m NewMatch) (*models.Match, error) {
	var out models.Match
	if err := c.postJSON(ctx, "/matches", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ScoreUpdate struct {
	ScoreA int                `json:"scoreA"`
	ScoreB int                `json:"scoreB"`
	Status models.MatchStatus `json:"status,omitempty"`
}

func (c *Client) UpdateScore(ctx context.Context, matchID string, u ScoreUpdate) (*models.Match, error) {
	var out models.Match
	if err := c.postJSON(ctx, "/matches/"+url.PathEscape(matchID)+"/score", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
