package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/chefschoice/internal/catalog"
)

type HelpPanelData struct {
	CurrentView string
	// Bindings are markdown list items.
	Bindings      []string
	HelpView      string
	MarkdownStyle string
}

type CardData struct {
	ID          string
	Title       string
	ImageURL    string
	Ingredients []string
	Steps       []string
	Selected    bool
}

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
}

type FormData struct {
	ID          string
	Fields      []FormFieldData
	Saving      bool
	SpinnerView string
}

type PlaceholderData struct {
	Kind        catalog.Placeholder
	SpinnerView string
	Err         error
}

type ListPanelData struct {
	Title       string
	SearchView  string
	Placeholder PlaceholderData
	Items       []string
}

func RenderCard(data CardData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("id: %s", data.ID)) + "\n")
	if data.ImageURL != "" {
		b.WriteString(fmt.Sprintf("image: %s\n", data.ImageURL))
	}
	b.WriteString("ingredients:\n")
	if len(data.Ingredients) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, ing := range data.Ingredients {
		b.WriteString("- " + ing + "\n")
	}
	b.WriteString("instructions:\n")
	steps := RenderSteps(data.Steps)
	if steps == "" {
		steps = "  (none)"
	}
	b.WriteString(steps)

	style := cardStyle
	if data.Selected {
		style = selectedStyle
	}
	return style.Width(54).Render(strings.TrimSpace(b.String()))
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("editing "+data.ID) + "\n")
	b.WriteString("keys: [tab] field [ctrl+s] save [esc] cancel\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s:\n%s\n", cursor, f.Label, f.View))
	}
	if data.Saving {
		b.WriteString(strings.TrimSpace(data.SpinnerView+" saving...") + "\n")
	}
	return formStyle.Width(54).Render(strings.TrimSpace(b.String()))
}

func RenderPlaceholder(data PlaceholderData) string {
	switch data.Kind {
	case catalog.PlaceholderPending:
		return strings.TrimSpace(data.SpinnerView + " loading recipes...")
	case catalog.PlaceholderEmpty:
		return "(no recipes)"
	case catalog.PlaceholderFailed:
		if data.Err != nil {
			return errorStyle.Render("could not load recipes: " + data.Err.Error())
		}
		return errorStyle.Render("could not load recipes")
	default:
		return ""
	}
}

func RenderListPanel(data ListPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	if data.SearchView != "" {
		b.WriteString(data.SearchView + "\n")
	}
	if ph := RenderPlaceholder(data.Placeholder); ph != "" {
		b.WriteString(ph + "\n")
	}
	b.WriteString(strings.Join(data.Items, "\n"))
	return strings.TrimSpace(b.String())
}

// RenderProjection renders every item of p as plain cards. Forms are shown
// with their buffer values. Used outside the interactive program.
func RenderProjection(p catalog.Projection) string {
	if ph := RenderPlaceholder(PlaceholderData{Kind: p.Placeholder, Err: p.Err}); ph != "" {
		return ph
	}
	out := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		switch {
		case item.Card != nil:
			out = append(out, RenderCard(CardFromProjection(*item.Card, false)))
		case item.Form != nil:
			out = append(out, RenderForm(FormFromDraft(*item.Form)))
		}
	}
	return strings.Join(out, "\n")
}

func CardFromProjection(c catalog.Card, selected bool) CardData {
	return CardData{
		ID:          c.ID,
		Title:       c.Title,
		ImageURL:    c.ImageURL,
		Ingredients: c.Ingredients,
		Steps:       c.Steps,
		Selected:    selected,
	}
}

// FormFromDraft renders the buffer values as static field views.
func FormFromDraft(f catalog.Form) FormData {
	return FormData{
		ID: f.ID,
		Fields: []FormFieldData{
			{Label: "title", View: f.Draft.Title},
			{Label: "ingredients", View: strings.Join(f.Draft.Ingredients, "\n")},
			{Label: "instructions", View: f.Draft.Instructions},
			{Label: "imageUrl", View: f.Draft.ImageURL},
		},
		Saving: f.Saving,
	}
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var md strings.Builder
	fmt.Fprintf(&md, "### help: %s\n\n", strings.ToLower(data.CurrentView))
	for _, b := range data.Bindings {
		fmt.Fprintf(&md, "- %s\n", b)
	}
	body := RenderMarkdownStyle(md.String(), data.MarkdownStyle, 52)
	return strings.TrimSpace(body + "\n\n" + data.HelpView)
}
