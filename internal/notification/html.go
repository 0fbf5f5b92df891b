package notification

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type valueStyle int

const (
	plainValue valueStyle = iota
	badgeValue
	messageValue
)

type field struct {
	emoji string
	label string
	value string
	style valueStyle
}

// segment is a run of note text, optionally bold.
type segment struct {
	text string
	bold bool
}

type note struct {
	class string
	lead  string
	body  []segment
}

type document struct {
	theme  theme
	fields []field
	notes  []note
}

// htmlWriter remembers the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func component(fn func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		fn(hw)
		return hw.err
	})
}

// emailPage joins the page sections in document order.
func emailPage(doc document) templ.Component {
	parts := []templ.Component{pageHead(doc.theme), pageHeader(doc.theme), templ.Raw(`<div class="content">`)}
	for _, f := range doc.fields {
		parts = append(parts, fieldRow(f))
	}
	for _, n := range doc.notes {
		parts = append(parts, noteBox(n))
	}
	parts = append(parts, templ.Raw(`</div>`), pageFooter(doc.theme), templ.Raw("</div></body></html>\n"))
	return templ.Join(parts...)
}

func pageHead(th theme) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
		hw.text(th.title)
		hw.raw("</title><style>")
		hw.raw(stylesheet(th))
		hw.raw("</style></head><body><div class=\"container\">")
	})
}

func pageHeader(th theme) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="header"><h1>`)
		hw.text(th.heading)
		hw.raw(`</h1><p>`)
		hw.text(th.subtitle)
		hw.raw(`</p></div>`)
	})
}

func fieldRow(f field) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="field"><div class="label"><span class="emoji">`)
		hw.text(f.emoji)
		hw.raw(`</span>`)
		hw.text(f.label)
		hw.raw(`</div>`)
		switch f.style {
		case badgeValue:
			hw.raw(`<div class="value"><span class="interest-badge">`)
			hw.text(f.value)
			hw.raw(`</span></div>`)
		case messageValue:
			hw.raw(`<div class="message-box">`)
			hw.text(f.value)
			hw.raw(`</div>`)
		default:
			hw.raw(`<div class="value">`)
			hw.text(f.value)
			hw.raw(`</div>`)
		}
		hw.raw(`</div>`)
	})
}

func noteBox(n note) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="`)
		hw.text(n.class)
		hw.raw(`"><strong>`)
		hw.text(n.lead)
		hw.raw(`</strong>`)
		for _, seg := range n.body {
			if seg.bold {
				hw.raw(`<strong>`)
				hw.text(seg.text)
				hw.raw(`</strong>`)
				continue
			}
			hw.text(seg.text)
		}
		hw.raw(`</div>`)
	})
}

func pageFooter(th theme) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="footer"><p>`)
		hw.text("This email was automatically generated from the Lotus Yoga Studio " + th.footerSource + " form.")
		hw.raw(`</p><p>`)
		hw.text(th.footerTagline)
		hw.raw(`</p></div>`)
	})
}

const stylesheetTemplate = `body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0; background: #f5f5f5; }
.container { max-width: 600px; margin: 20px auto; background: white; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
.header { background: %[1]s; color: white; padding: 30px 20px; text-align: center; }
.header h1 { margin: 0; font-size: 24px; font-weight: 600; }
.header p { margin: 8px 0 0 0; opacity: 0.9; font-size: 14px; }
.content { padding: 30px; }
.field { margin-bottom: 20px; }
.label { font-weight: 600; color: #555; font-size: 14px; margin-bottom: 8px; display: flex; align-items: center; }
.label .emoji { margin-right: 8px; font-size: 16px; }
.value { background: #f8fafc; padding: 15px; border-radius: 8px; border-left: 4px solid %[3]s; font-size: 15px; word-wrap: break-word; }
.interest-badge { background: %[2]s; color: white; padding: 8px 16px; border-radius: 20px; display: inline-block; font-weight: 500; font-size: 14px; }
.message-box { background: #f8fafc; padding: 20px; border-radius: 8px; border-left: 4px solid %[3]s; font-size: 15px; line-height: 1.6; white-space: pre-wrap; word-wrap: break-word; }
.footer { background: #f8fafc; padding: 20px; text-align: center; color: #666; font-size: 12px; border-top: 1px solid #e2e8f0; }
.priority-note { background: %[4]s; border: 1px solid %[5]s; border-radius: 8px; padding: 15px; margin-top: 20px; }
.priority-note strong { color: %[6]s; }
.contact-info { background: #ecfdf5; border: 1px solid #22c55e; border-radius: 8px; padding: 15px; margin-top: 20px; }
.contact-info strong { color: #166534; }
`

func stylesheet(th theme) string {
	return fmt.Sprintf(stylesheetTemplate,
		th.headerGradient, th.badgeGradient, th.accent,
		th.noteBackground, th.noteBorder, th.noteStrong)
}
