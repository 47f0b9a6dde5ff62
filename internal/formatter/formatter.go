// Package formatter runs the "format current document" command: split off
// front matter, send the body for reformatting, and write the result back.
package formatter

import (
	"context"
	"fmt"
	"log"

	"mdformat/internal/document"
	"mdformat/internal/events"
	"mdformat/internal/models"
)

const (
	NoticeMissingAPIKey = "Set an API key in the settings first"
	NoticeEmptyDocument = "Document body is empty"
	NoticeStarted       = "Formatting document..."
	NoticeDone          = "Document formatted"
	NoticeFailedPrefix  = "Formatting failed: "
)

// DocumentEditor is the open document.
type DocumentEditor interface {
	GetText() (string, error)
	SetText(text string) error
}

// NotificationSink shows short transient messages to the user. Sinks that
// also implement events.Emitter receive typed notices.
type NotificationSink interface {
	Notify(msg string)
}

// SettingsProvider returns the settings to use for one invocation.
type SettingsProvider interface {
	Current() models.Settings
}

// Completer sends a body to the remote model and returns the reformatted body.
type Completer interface {
	Format(ctx context.Context, settings models.Settings, body string) (string, error)
}

type Formatter struct {
	settings  SettingsProvider
	completer Completer
}

func New(settings SettingsProvider, completer Completer) *Formatter {
	return &Formatter{settings: settings, completer: completer}
}

// FormatDocument runs the whole pipeline against editor. The document is
// only written when the remote call succeeds. Every failure is reported to
// sink, logged, and returned.
func (f *Formatter) FormatDocument(ctx context.Context, editor DocumentEditor, sink NotificationSink) error {
	session := events.SessionFromContext(ctx)
	settings := f.settings.Current()

	if settings.APIKey == "" {
		err := &ConfigurationError{Field: "API key"}
		notify(sink, events.NewWarn(NoticeMissingAPIKey))
		return err
	}

	text, err := editor.GetText()
	if err != nil {
		return f.fail(sink, session, fmt.Errorf("read document: %w", err))
	}

	header, body := document.Split(text)
	if document.IsBlank(body) {
		notify(sink, events.NewWarn(NoticeEmptyDocument))
		return &EmptyInputError{}
	}

	notify(sink, events.NewInfo(NoticeStarted))

	formatted, err := f.completer.Format(ctx, settings, body)
	if err != nil {
		return f.fail(sink, session, err)
	}

	if err := editor.SetText(document.Join(header, formatted)); err != nil {
		return f.fail(sink, session, fmt.Errorf("write document: %w", err))
	}

	notify(sink, events.NewSuccess(NoticeDone))
	return nil
}

func (f *Formatter) fail(sink NotificationSink, session string, err error) error {
	if session != "" {
		log.Printf("format %s failed: %v", session, err)
	} else {
		log.Printf("format failed: %v", err)
	}
	notify(sink, events.NewError(NoticeFailedPrefix+err.Error()))
	return err
}

func notify(sink NotificationSink, evt events.Notification) {
	if sink == nil {
		return
	}
	if em, ok := sink.(events.Emitter); ok {
		em.Emit(evt)
		return
	}
	sink.Notify(evt.Message)
}
