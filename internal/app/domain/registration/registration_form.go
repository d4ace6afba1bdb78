package registration

import (
	"context"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/components"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
)

// Options are the choices the form offers.
type Options struct {
	Sports   []models.Sport
	Colleges []models.College
}

type FormView struct {
	Form    Form
	Errors  models.FieldErrors
	Banner  *components.BannerProps
	Options Options
	LoadErr error
}

func transactionField(value, errMsg string) components.FieldProps {
	return components.FieldProps{
		Label:       "Transaction ID",
		Name:        "transactionId",
		Value:       value,
		Placeholder: "UTR / UPI reference",
		Error:       errMsg,
		Required:    true,
	}
}

func RegisterForm(v FormView) templ.Component {
	selected := make(map[string]bool, len(v.Form.SportIDs))
	for _, id := range v.Form.SportIDs {
		selected[id] = true
	}

	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Open("div", "class", "mx-auto max-w-2xl py-12")
		h.Elem("h1", "Register for the meet", "class", "mb-6 text-3xl font-bold")

		h.Open("div", "id", "registration-messages")
		if v.Banner != nil {
			h.Render(ctx, components.Banner(*v.Banner))
		}
		if v.LoadErr != nil {
			h.Render(ctx, components.Banner(components.BannerProps{
				Type:    components.BannerWarning,
				Message: "Some choices could not be loaded. Reload the page to try again.",
				ID:      "registration-options-error",
			}))
		}
		if len(v.Errors) > 0 {
			h.Render(ctx, components.Banner(components.BannerProps{
				Type:    components.BannerError,
				Message: "Please correct the highlighted fields.",
				ID:      "registration-invalid",
			}))
		}
		h.Close("div")

		h.Open("form", "id", "registration-form", "method", "post", "action", "/register", "enctype", "multipart/form-data")
		h.Render(ctx, components.Field(components.FieldProps{Label: "Full name", Name: "studentName", Value: v.Form.StudentName, Error: v.Errors["studentName"], Required: true}))
		h.Render(ctx, components.Field(components.FieldProps{Label: "Email", Name: "email", Type: "email", Value: v.Form.Email, Error: v.Errors["email"], Required: true}))
		h.Render(ctx, components.Field(components.FieldProps{Label: "Phone", Name: "phone", Type: "tel", Value: v.Form.Phone, Placeholder: "10 digit mobile number", Error: v.Errors["phone"], Required: true}))

		h.Open("div", "class", "mb-4")
		h.Elem("label", "College", "for", "collegeId", "class", "block text-sm font-medium")
		h.Open("select", "id", "collegeId", "name", "collegeId", "required", "required", "class", "mt-1 block w-full rounded-md border px-3 py-2")
		h.Elem("option", "Choose your college", "value", "")
		for _, col := range v.Options.Colleges {
			attrs := []string{"value", col.ID.String()}
			if col.ID.String() == v.Form.CollegeID {
				attrs = append(attrs, "selected", "selected")
			}
			h.Elem("option", col.Name, attrs...)
		}
		h.Close("select")
		fieldError(h, "collegeId", v.Errors["collegeId"])
		h.Close("div")

		h.Open("fieldset", "id", "sports", "class", "mb-4")
		h.Elem("legend", "Sports", "class", "block text-sm font-medium")
		for _, sp := range v.Options.Sports {
			id := sp.ID.String()
			h.Open("label", "class", "mr-4 inline-flex items-center gap-1")
			attrs := []string{"type", "checkbox", "name", "sportIds", "value", id}
			if selected[id] {
				attrs = append(attrs, "checked", "checked")
			}
			h.Open("input", attrs...)
			h.Text(sp.Name)
			h.Close("label")
		}
		fieldError(h, "sportIds", v.Errors["sportIds"])
		h.Close("fieldset")

		h.Open("div", "id", "transaction-field", "hx-post", "/register/extract-txn", "hx-trigger", "ocr-complete from:body", "hx-include", "#ocrText", "hx-target", "this", "hx-swap", "innerHTML")
		h.Render(ctx, components.Field(transactionField(v.Form.TransactionID, v.Errors["transactionId"])))
		h.Close("div")

		// the upload goes last so an oversize file never costs the text fields
		h.Render(ctx, components.Field(components.FieldProps{Label: "Payment screenshot", Name: "paymentScreenshot", Type: "file", Error: v.Errors["paymentScreenshot"], Required: true}))
		h.Open("input", "type", "hidden", "id", "ocrText", "name", "ocrText")

		h.Render(ctx, components.Button(components.ButtonProps{Label: "Submit registration", Class: "w-full"}))
		h.Close("form")
		h.Close("div")
		h.Raw(`<script src="https://cdn.jsdelivr.net/npm/tesseract.js@5/dist/tesseract.min.js" defer></script>`)
		h.Raw(`<script src="/assets/js/ocr.js" defer></script>`)
	})
}

func fieldError(h *components.HTML, field, msg string) {
	if msg != "" {
		h.Elem("p", msg, "class", "mt-1 text-sm text-red-600", "data-error-for", field)
	}
}

// Confirmation is shown once the backend accepted the registration.
func Confirmation(reg *models.Registration) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Open("div", "id", "registration-confirmed", "class", "mx-auto max-w-xl py-16 text-center")
		h.Elem("h1", "Registration received", "class", "text-3xl font-bold")
		h.Elem("p", "Thank you, "+reg.StudentName+". Your payment will be verified by the organizers.", "class", "mt-4")
		h.Elem("p", "Reference: "+reg.ID.String(), "class", "mt-2 text-sm text-gray-600", "data-registration", reg.ID.String())
		h.Close("div")
	})
}
