package components

import (
	"context"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
)

// LayoutPage renders the full document around l.Content.
func LayoutPage(l models.LayoutTempl) templ.Component {
	return Func(func(ctx context.Context, h *HTML) {
		h.Raw("<!DOCTYPE html>")
		h.Raw(`<html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Elem("title", l.Title)
		h.Raw(`<link rel="stylesheet" href="/assets/css/app.css">`)
		h.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		h.Raw(`</head><body class="min-h-screen bg-gray-50" hx-boost="true">`)

		h.Open("nav", "class", "flex items-center gap-4 bg-indigo-700 px-6 py-3 text-white")
		h.Elem("a", "Sports Meet", "href", "/", "class", "mr-6 font-bold")
		for _, item := range l.Nav.Items {
			class := "hover:underline"
			if item.Name == l.ActiveNav {
				class = "font-semibold underline"
			}
			h.Elem("a", item.Name, "href", item.URL, "class", class)
		}
		h.Raw(`<span class="flex-1"></span>`)
		if l.Viewer != nil {
			h.Elem("span", l.Viewer.RoleLabel, "class", "text-sm", "data-viewer-role", l.Viewer.Role)
			h.Raw(`<form method="post" action="/logout" class="inline">`)
			h.Render(ctx, Button(ButtonProps{Label: "Log out", Variant: ButtonSecondary, Class: "py-1"}))
			h.Raw(`</form>`)
		} else {
			h.Elem("a", "Staff login", "href", "/login", "class", "text-sm underline")
		}
		h.Close("nav")

		h.Raw(`<div id="notifications" class="fixed right-4 top-16 z-50 w-96"></div>`)
		h.Open("main", "class", "mx-auto max-w-6xl px-6 py-8")
		h.Render(ctx, l.Content)
		h.Close("main")
		h.Raw(`</body></html>`)
	})
}
