// Package registration serves the student registration form.
package registration

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/components"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/handlers"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/middleware"
)

const (
	// maxOCRText bounds the OCR text accepted by the extraction endpoint.
	maxOCRText = 16 << 10

	maxFieldBytes   = 4 << 10
	maxFormParts    = 64
	screenshotField = "paymentScreenshot"
)

type Catalog interface {
	Sports(ctx context.Context) ([]models.Sport, error)
	Colleges(ctx context.Context) ([]models.College, error)
}

type Submitter interface {
	CreateRegistration(ctx context.Context, reg backend.NewRegistration) (*models.Registration, error)
}

type RegistrationHandlers struct {
	*handlers.BaseHandler
	catalog  Catalog
	api      Submitter
	maxBytes int64
}

func NewRegistrationHandlers(base *handlers.BaseHandler, catalog Catalog, api Submitter, maxBytes int64) *RegistrationHandlers {
	return &RegistrationHandlers{BaseHandler: base, catalog: catalog, api: api, maxBytes: maxBytes}
}

func (h *RegistrationHandlers) RegisterPage(c *gin.Context) {
	opts, err := h.options(c.Request.Context())
	if err != nil {
		h.Logger.Warn("Registration options unavailable", zap.Error(err))
	}
	h.RenderPage(c, http.StatusOK, "Register - Sports Meet", "Register", RegisterForm(FormView{Options: opts, LoadErr: err}))
}

func (h *RegistrationHandlers) SubmitRegistration(c *gin.Context) {
	if h.maxBytes > 0 {
		// room for the text fields on top of the screenshot
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+(1<<20))
	}

	form, shot, err := h.readSubmission(c)
	if err != nil {
		h.Logger.Warn("Failed to read registration form", zap.Error(err))
	}
	form.Normalize()

	contentType, verr := Validate(form, shot, h.maxBytes)
	if verr != nil {
		var fieldErrs models.FieldErrors
		errors.As(verr, &fieldErrs)
		h.Logger.Info("Registration rejected", zap.Int("fields", len(fieldErrs)))
		h.renderForm(c, http.StatusUnprocessableEntity, form, fieldErrs, nil)
		return
	}

	reg, err := h.api.CreateRegistration(c.Request.Context(), backend.NewRegistration{
		StudentName:    form.StudentName,
		Email:          form.Email,
		Phone:          form.Phone,
		CollegeID:      form.CollegeID,
		SportIDs:       form.SportIDs,
		TransactionID:  form.TransactionID,
		ScreenshotName: shot.Name,
		ScreenshotType: contentType,
		Screenshot:     shot.Data,
	})
	if err != nil {
		msg := "We could not submit your registration. Please try again."
		status := http.StatusBadGateway
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			status = http.StatusUnprocessableEntity
			if apiErr.Message != "" {
				msg = apiErr.Message
			}
		}
		h.Logger.Warn("Registration submission failed", zap.Error(err))
		h.renderForm(c, status, form, nil, &components.BannerProps{
			Type:    components.BannerError,
			Message: msg,
			ID:      "registration-failed",
		})
		return
	}

	h.Logger.Info("Registration submitted", zap.String("registration", reg.ID.String()))
	h.RenderPage(c, http.StatusCreated, "Registered - Sports Meet", "Register", Confirmation(reg))
}

// ExtractTransactionID answers the form's OCR step with the id found in the
// recognized text, as a replacement transaction id field.
func (h *RegistrationHandlers) ExtractTransactionID(c *gin.Context) {
	text := c.PostForm("ocrText")
	if len(text) > maxOCRText {
		text = text[:maxOCRText]
	}

	id, ok := ExtractTransactionID(text)
	props := transactionField(id, "")
	if !ok {
		props.Error = "No transaction ID found in the screenshot. Please type it in."
	}
	if middleware.IsHTMX(c) {
		h.Render(c, http.StatusOK, components.Field(props))
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactionId": id, "found": ok})
}

func (h *RegistrationHandlers) renderForm(c *gin.Context, status int, form Form, errs models.FieldErrors, banner *components.BannerProps) {
	opts, err := h.options(c.Request.Context())
	if err != nil {
		h.Logger.Warn("Registration options unavailable", zap.Error(err))
	}
	h.RenderPage(c, status, "Register - Sports Meet", "Register", RegisterForm(FormView{
		Form:    form,
		Errors:  errs,
		Banner:  banner,
		Options: opts,
		LoadErr: err,
	}))
}

// options loads the sports and colleges the form offers.
func (h *RegistrationHandlers) options(ctx context.Context) (Options, error) {
	var opts Options
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		opts.Sports, err = h.catalog.Sports(gctx)
		return err
	})
	g.Go(func() (err error) {
		opts.Colleges, err = h.catalog.Colleges(gctx)
		return err
	})
	return opts, g.Wait()
}

// readSubmission streams the multipart body once. Text fields read before a
// failure are kept, so an oversize upload is reported as such instead of
// blanking the whole form. The screenshot is nil when no file was sent.
func (h *RegistrationHandlers) readSubmission(c *gin.Context) (Form, *Screenshot, error) {
	values := url.Values{}
	var shot *Screenshot

	mr, err := c.Request.MultipartReader()
	if err != nil {
		// plain urlencoded posts carry no screenshot
		if perr := c.Request.ParseForm(); perr != nil {
			return formFrom(values), nil, perr
		}
		return formFrom(c.Request.PostForm), nil, nil
	}

	for parts := 0; parts < maxFormParts; parts++ {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				shot = h.oversize(shot)
				return formFrom(values), shot, nil
			}
			return formFrom(values), shot, err
		}

		name := part.FormName()
		if name == screenshotField && part.FileName() != "" {
			shot, err = h.readUpload(part)
		} else if name != "" {
			var b []byte
			b, err = io.ReadAll(io.LimitReader(part, maxFieldBytes))
			values.Add(name, string(b))
		}
		part.Close()

		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return formFrom(values), h.oversize(shot), nil
			}
			return formFrom(values), shot, err
		}
	}
	return formFrom(values), shot, nil
}

// readUpload reads up to one byte past the cap, so an oversize upload is
// detectable without buffering all of it.
func (h *RegistrationHandlers) readUpload(part *multipart.Part) (*Screenshot, error) {
	var r io.Reader = part
	if h.maxBytes > 0 {
		r = io.LimitReader(part, h.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	name := part.FileName()
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return &Screenshot{Name: name, Data: data, Size: int64(len(data))}, nil
}

// oversize marks the upload as over the cap, keeping its name when known.
func (h *RegistrationHandlers) oversize(shot *Screenshot) *Screenshot {
	out := &Screenshot{Size: h.maxBytes + 1}
	if shot != nil {
		out.Name = shot.Name
	}
	return out
}

func formFrom(v url.Values) Form {
	return Form{
		StudentName:   v.Get("studentName"),
		Email:         v.Get("email"),
		Phone:         v.Get("phone"),
		CollegeID:     v.Get("collegeId"),
		SportIDs:      v["sportIds"],
		TransactionID: v.Get("transactionId"),
	}
}
