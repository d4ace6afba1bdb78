package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.BackendConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second, Retries: 3}, nil)
}

func TestClientUnwrapsBothShapes(t *testing.T) {
	t.Run("enveloped", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/sports", r.URL.Path)
			_, _ = io.WriteString(w, `{"data":[{"id":1,"name":"Football"},{"id":"2","name":"Chess"}]}`)
		})
		sports, err := c.Sports(context.Background())
		require.NoError(t, err)
		require.Len(t, sports, 2)
		assert.Equal(t, models.ID("1"), sports[0].ID)
		assert.Equal(t, "Chess", sports[1].Name)
	})

	t.Run("bare array", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[{"id":3,"name":"Kabaddi"}]`)
		})
		sports, err := c.Sports(context.Background())
		require.NoError(t, err)
		require.Len(t, sports, 1)
		assert.Equal(t, "Kabaddi", sports[0].Name)
	})

	t.Run("enveloped object", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"data":{"id":5,"name":"Volleyball"}}`)
		})
		sport, err := c.Sport(context.Background(), "5")
		require.NoError(t, err)
		assert.Equal(t, "Volleyball", sport.Name)
	})
}

func TestClientAttachesBearer(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := c.Users(WithBearer(context.Background(), "tok-123"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", got)

	_, err = c.Colleges(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClientUnauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
		})
		_, err := c.Registrations(context.Background(), RegistrationFilter{})
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Equal(t, int32(1), calls.Load(), "auth failures are not retried")
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `[{"id":1,"teamA":"A","teamB":"B","status":"live"}]`)
	})

	matches, err := c.Matches(context.Background(), MatchFilter{Status: models.MatchLive})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientAPIError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"transaction id already used"}`)
	})

	err := c.VerifyPayment(context.Background(), "7", models.PaymentApproved, "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "transaction id already used", apiErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientLoginAndQueries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "head@college.edu", body["email"])
			_, _ = io.WriteString(w, `{"token":"a.b.c","role":"sports_head","assignedSportId":4}`)
		case "/teams":
			assert.Equal(t, "4", r.URL.Query().Get("sportId"))
			_, _ = io.WriteString(w, `{"data":[]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	res, err := c.Login(context.Background(), "head@college.edu", "pw")
	require.NoError(t, err)
	assert.Equal(t, "sports_head", res.Role)
	assert.Equal(t, models.ID("4"), res.AssignedSportID)

	teams, err := c.Teams(context.Background(), "4")
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestClientCreateRegistrationMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Asha Rao", r.FormValue("studentName"))
		assert.Equal(t, "1,2", r.FormValue("sportIds"))
		f, hdr, err := r.FormFile("paymentScreenshot")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "pay.png", hdr.Filename)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":11,"studentName":"Asha Rao","paymentStatus":"pending"}`)
	})

	reg, err := c.CreateRegistration(context.Background(), NewRegistration{
		StudentName:    "Asha Rao",
		SportIDs:       []string{"1", "2"},
		ScreenshotName: "pay.png",
		ScreenshotType: "image/png",
		Screenshot:     []byte("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ID("11"), reg.ID)
	assert.Equal(t, models.PaymentPending, reg.PaymentStatus)
}

func TestClientHonoursCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Sports(ctx)
	assert.Error(t, err)
}
