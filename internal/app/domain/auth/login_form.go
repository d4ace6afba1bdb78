package auth

import (
	"context"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/components"
)

// LoginForm renders the sign-in form with an optional error banner.
func LoginForm(email string, banner *components.BannerProps) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Open("div", "class", "mx-auto max-w-sm py-16")
		h.Elem("h1", "Sign in to the console", "class", "mb-6 text-2xl font-bold")
		h.Open("div", "id", "login-messages")
		if banner != nil {
			h.Render(ctx, components.Banner(*banner))
		}
		h.Close("div")
		h.Open("form", "id", "login-form", "method", "post", "action", "/login", "hx-post", "/login")
		h.Render(ctx, components.Field(components.FieldProps{Label: "Email", Name: "email", Type: "email", Value: email, Required: true}))
		h.Render(ctx, components.Field(components.FieldProps{Label: "Password", Name: "password", Type: "password", Required: true}))
		h.Render(ctx, components.Button(components.ButtonProps{Label: "Sign in", Class: "w-full"}))
		h.Close("form")
		h.Close("div")
	})
}
