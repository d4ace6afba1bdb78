package components

import (
	"context"
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type BannerType string

const (
	BannerError   BannerType = "error"
	BannerSuccess BannerType = "success"
	BannerInfo    BannerType = "info"
	BannerWarning BannerType = "warning"
)

type BannerProps struct {
	Type        BannerType
	Message     string
	Description string
	ID          string
	Dismissable bool
	AutoDismiss int // seconds, 0 keeps the banner
}

var bannerClasses = map[BannerType]string{
	BannerError:   "border-red-300 bg-red-50 text-red-800",
	BannerSuccess: "border-green-300 bg-green-50 text-green-800",
	BannerInfo:    "border-blue-300 bg-blue-50 text-blue-800",
	BannerWarning: "border-yellow-300 bg-yellow-50 text-yellow-800",
}

func Banner(p BannerProps) templ.Component {
	return Func(func(ctx context.Context, h *HTML) {
		kind := p.Type
		if _, ok := bannerClasses[kind]; !ok {
			kind = BannerInfo
		}
		attrs := []string{
			"role", "alert",
			"class", twmerge.Merge("rounded-md border p-4 my-2", bannerClasses[kind]),
			"data-banner", string(kind),
		}
		if p.ID != "" {
			attrs = append(attrs, "id", p.ID)
		}
		if p.AutoDismiss > 0 {
			attrs = append(attrs, "data-auto-dismiss", strconv.Itoa(p.AutoDismiss))
		}
		h.Open("div", attrs...)
		h.Elem("p", p.Message, "class", "font-semibold")
		if p.Description != "" {
			h.Elem("p", p.Description, "class", "text-sm")
		}
		if p.Dismissable {
			h.Raw(`<button type="button" class="text-sm underline" onclick="this.parentElement.remove()">Dismiss</button>`)
		}
		h.Close("div")
	})
}

type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonDanger    ButtonVariant = "danger"
)

var buttonVariants = map[ButtonVariant]string{
	ButtonPrimary:   "bg-indigo-600 text-white hover:bg-indigo-500",
	ButtonSecondary: "bg-white text-gray-900 ring-1 ring-gray-300 hover:bg-gray-50",
	ButtonDanger:    "bg-red-600 text-white hover:bg-red-500",
}

type ButtonProps struct {
	Label   string
	Type    string
	Variant ButtonVariant
	Class   string
	Name    string
	Value   string
}

// ButtonClass merges caller classes over the variant defaults.
func ButtonClass(variant ButtonVariant, extra string) string {
	base, ok := buttonVariants[variant]
	if !ok {
		base = buttonVariants[ButtonPrimary]
	}
	return twmerge.Merge("rounded-md px-3 py-2 text-sm font-semibold shadow-sm", base, extra)
}

func Button(p ButtonProps) templ.Component {
	return Func(func(ctx context.Context, h *HTML) {
		typ := p.Type
		if typ == "" {
			typ = "submit"
		}
		attrs := []string{"type", typ, "class", ButtonClass(p.Variant, p.Class)}
		if p.Name != "" {
			attrs = append(attrs, "name", p.Name, "value", p.Value)
		}
		h.Elem("button", p.Label, attrs...)
	})
}

type FieldProps struct {
	Label       string
	Name        string
	Type        string
	Value       string
	Placeholder string
	Error       string
	Required    bool
}

// Field renders a labelled input with its validation message.
func Field(p FieldProps) templ.Component {
	return Func(func(ctx context.Context, h *HTML) {
		typ := p.Type
		if typ == "" {
			typ = "text"
		}
		h.Open("div", "class", "mb-4")
		h.Elem("label", p.Label, "for", p.Name, "class", "block text-sm font-medium")
		inputClass := "mt-1 block w-full rounded-md border px-3 py-2"
		if p.Error != "" {
			inputClass = twmerge.Merge(inputClass, "border-red-500")
		}
		attrs := []string{"id", p.Name, "name", p.Name, "type", typ, "class", inputClass}
		if typ != "file" && typ != "password" {
			attrs = append(attrs, "value", p.Value)
		}
		if p.Placeholder != "" {
			attrs = append(attrs, "placeholder", p.Placeholder)
		}
		if p.Required {
			attrs = append(attrs, "required", "required")
		}
		h.Open("input", attrs...)
		if p.Error != "" {
			h.Elem("p", p.Error, "class", "mt-1 text-sm text-red-600", "data-error-for", p.Name)
		}
		h.Close("div")
	})
}

// Table renders a simple data table; cells are escaped text.
func Table(id string, headers []string, rows [][]string, empty string) templ.Component {
	return Func(func(ctx context.Context, h *HTML) {
		if len(rows) == 0 {
			h.Elem("p", empty, "class", "text-sm text-gray-500", "data-empty", id)
			return
		}
		attrs := []string{"class", "min-w-full divide-y divide-gray-200 text-sm"}
		if id != "" {
			attrs = append(attrs, "id", id)
		}
		h.Open("table", attrs...)
		h.Raw("<thead><tr>")
		for _, hd := range headers {
			h.Elem("th", hd, "class", "px-3 py-2 text-left font-semibold")
		}
		h.Raw("</tr></thead><tbody>")
		for _, row := range rows {
			h.Raw("<tr>")
			for _, cell := range row {
				h.Elem("td", cell, "class", "px-3 py-2")
			}
			h.Raw("</tr>")
		}
		h.Raw("</tbody></table>")
	})
}

// Section wraps a dashboard widget with a heading.
func Section(id, title string, body templ.Component) templ.Component {
	return Func(func(ctx context.Context, h *HTML) {
		h.Open("section", "id", id, "class", "mb-8 rounded-lg bg-white p-4 shadow")
		h.Elem("h2", title, "class", "mb-3 text-lg font-semibold")
		h.Render(ctx, body)
		h.Close("section")
	})
}

func NotFound() templ.Component {
	return Func(func(ctx context.Context, h *HTML) {
		h.Open("div", "id", "not-found", "class", "mx-auto max-w-xl py-24 text-center")
		h.Elem("h1", "Page not found", "class", "text-3xl font-bold")
		h.Elem("p", "The page you are looking for does not exist.", "class", "mt-4 text-gray-600")
		h.Elem("a", "Back to home", "href", "/", "class", "mt-6 inline-block underline")
		h.Close("div")
	})
}
