// Package ui is the terminal settings form.
package ui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"mdformat/internal/models"
)

// SettingsEditor is what the form reads and writes. Every setter persists.
type SettingsEditor interface {
	Current() models.Settings
	SetAPIKey(ctx context.Context, apiKey string) error
	SetAPIURL(ctx context.Context, apiURL string) error
	SetModel(ctx context.Context, model string) error
	ModelOptions() []models.LLMModel
	SelectedOption() string
	SelectModelOption(ctx context.Context, key string) error
}

const (
	RowAPIKey = iota
	RowAPIURL
	RowModel
	RowCustomModel
	rowCount
)

type field struct {
	label       string
	desc        string
	placeholder string
	masked      bool
	value       string
	committed   string
}

// SettingsForm edits the three settings. Text rows commit on Enter or when
// focus leaves them; the model list commits on every change.
type SettingsForm struct {
	ctx      context.Context
	screen   tcell.Screen
	settings SettingsEditor

	fields    [rowCount]field
	options   []models.LLMModel
	optionIdx int
	focus     int
	status    string
	statusErr bool
	quit      bool
}

func NewSettingsForm(ctx context.Context, screen tcell.Screen, settings SettingsEditor) *SettingsForm {
	f := &SettingsForm{
		ctx:      ctx,
		screen:   screen,
		settings: settings,
		options:  settings.ModelOptions(),
	}
	cur := settings.Current()
	f.fields[RowAPIKey] = field{
		label:       "API key",
		desc:        "Bearer token for the chat-completions endpoint",
		placeholder: "sk-or-v1-...",
		masked:      true,
	}
	f.fields[RowAPIURL] = field{
		label:       "API URL",
		desc:        "Chat-completions endpoint (default: " + models.DefaultAPIURL + ")",
		placeholder: models.DefaultAPIURL,
	}
	f.fields[RowModel] = field{
		label: "Model",
		desc:  "Left/Right to choose a preset model",
	}
	f.fields[RowCustomModel] = field{
		label:       "Custom model",
		desc:        "Type any model id; it overrides the list above",
		placeholder: "e.g. " + models.DefaultModel,
	}
	f.setField(RowAPIKey, cur.APIKey)
	f.setField(RowAPIURL, cur.APIURL)
	f.setField(RowCustomModel, cur.Model)
	f.syncOption()
	return f
}

func (f *SettingsForm) setField(row int, v string) {
	f.fields[row].value = v
	f.fields[row].committed = v
}

func (f *SettingsForm) syncOption() {
	selected := f.settings.SelectedOption()
	f.optionIdx = len(f.options) - 1
	for i, o := range f.options {
		if o.Key == selected {
			f.optionIdx = i
			break
		}
	}
}

// Focus returns the focused row.
func (f *SettingsForm) Focus() int { return f.focus }

// Value returns the text currently shown in a text row.
func (f *SettingsForm) Value(row int) string { return f.fields[row].value }

// SelectedOption returns the key of the highlighted list entry.
func (f *SettingsForm) SelectedOption() string {
	if len(f.options) == 0 {
		return ""
	}
	return f.options[f.optionIdx].Key
}

// Status returns the status line text.
func (f *SettingsForm) Status() string { return f.status }

// Done reports whether the form was closed.
func (f *SettingsForm) Done() bool { return f.quit }

// Run draws the form and handles input until it is closed. The caller owns
// the screen's Init and Fini.
func (f *SettingsForm) Run() error {
	for !f.quit {
		f.Render()
		ev := f.screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventKey:
			f.HandleKey(tev)
		case *tcell.EventResize:
			f.screen.Sync()
		case nil:
			return nil
		}
	}
	return nil
}

// HandleKey applies one key press.
func (f *SettingsForm) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		f.commit(f.focus)
		f.quit = true
		return
	case tcell.KeyTab, tcell.KeyDown:
		f.moveFocus(1)
		return
	case tcell.KeyBacktab, tcell.KeyUp:
		f.moveFocus(-1)
		return
	case tcell.KeyEnter:
		f.commit(f.focus)
		return
	}

	if f.focus == RowModel {
		switch ev.Key() {
		case tcell.KeyLeft:
			f.cycleOption(-1)
		case tcell.KeyRight:
			f.cycleOption(1)
		}
		return
	}

	fld := &f.fields[f.focus]
	switch ev.Key() {
	case tcell.KeyCtrlV:
		text, err := clipboard.ReadAll()
		if err != nil {
			f.setStatus("Paste error: "+err.Error(), true)
			return
		}
		text = strings.ReplaceAll(text, "\r\n", "")
		text = strings.ReplaceAll(text, "\n", "")
		fld.value += text
	case tcell.KeyCtrlU:
		fld.value = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if runes := []rune(fld.value); len(runes) > 0 {
			fld.value = string(runes[:len(runes)-1])
		}
	case tcell.KeyRune:
		fld.value += string(ev.Rune())
	}
}

func (f *SettingsForm) moveFocus(delta int) {
	f.commit(f.focus)
	f.focus = (f.focus + delta + rowCount) % rowCount
}

func (f *SettingsForm) cycleOption(delta int) {
	if len(f.options) == 0 {
		return
	}
	f.optionIdx = (f.optionIdx + delta + len(f.options)) % len(f.options)
	key := f.options[f.optionIdx].Key
	if key == models.CustomModelOption {
		f.setStatus("Custom model: edit the field below", false)
		return
	}
	if err := f.settings.SelectModelOption(f.ctx, key); err != nil {
		f.setStatus("Save failed: "+err.Error(), true)
		return
	}
	f.setField(RowCustomModel, f.settings.Current().Model)
	f.setStatus("Saved model "+key, false)
}

// commit persists a text row if its value changed since the last commit.
func (f *SettingsForm) commit(row int) {
	if row == RowModel {
		return
	}
	fld := &f.fields[row]
	if fld.value == fld.committed {
		return
	}

	var err error
	switch row {
	case RowAPIKey:
		err = f.settings.SetAPIKey(f.ctx, fld.value)
	case RowAPIURL:
		err = f.settings.SetAPIURL(f.ctx, fld.value)
	case RowCustomModel:
		err = f.settings.SetModel(f.ctx, fld.value)
	}
	if err != nil {
		f.setStatus("Save failed: "+err.Error(), true)
		return
	}

	if row == RowCustomModel {
		fld.value = f.settings.Current().Model
		f.syncOption()
	}
	fld.committed = fld.value
	f.setStatus("Saved "+strings.ToLower(fld.label), false)
}

func (f *SettingsForm) setStatus(msg string, isErr bool) {
	f.status = msg
	f.statusErr = isErr
}

// Render draws the whole form.
func (f *SettingsForm) Render() {
	s := f.screen
	s.Clear()
	width, height := s.Size()

	title := tcell.StyleDefault.Bold(true)
	label := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	focused := tcell.StyleDefault.Reverse(true)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	drawText(s, 1, 0, width, "Format Markdown settings", title)

	y := 2
	cursorX, cursorY := -1, -1
	for row := 0; row < rowCount; row++ {
		fld := f.fields[row]
		drawText(s, 1, y, width, fld.label, label)
		drawText(s, 1, y+1, width, fld.desc, dim)

		valueStyle := tcell.StyleDefault
		if row == f.focus {
			valueStyle = focused
		}
		prefix := "  > "
		var shown string
		if row == RowModel {
			shown = "< " + f.optionLabel() + " >"
		} else {
			shown = fld.value
			if fld.masked {
				shown = strings.Repeat("*", len([]rune(shown)))
			}
			if shown == "" && row != f.focus {
				shown = fld.placeholder
				valueStyle = dim
			}
		}
		x := drawText(s, 1, y+2, width, prefix, tcell.StyleDefault)
		end := drawText(s, x, y+2, width, shown, valueStyle)
		if row == f.focus && row != RowModel {
			cursorX, cursorY = end, y+2
		}
		y += 4
	}

	help := "Tab/Up/Down move  Enter save  Left/Right pick model  Ctrl+V paste  Ctrl+U clear  Esc close"
	drawText(s, 1, height-2, width, help, dim)
	if f.status != "" {
		style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
		if f.statusErr {
			style = tcell.StyleDefault.Foreground(tcell.ColorRed)
		}
		drawText(s, 1, height-1, width, f.status, style)
	}

	if cursorX >= 0 {
		s.ShowCursor(cursorX, cursorY)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (f *SettingsForm) optionLabel() string {
	if len(f.options) == 0 {
		return ""
	}
	o := f.options[f.optionIdx]
	if o.Key == models.CustomModelOption {
		return o.DisplayName
	}
	return o.DisplayName + " (" + o.Key + ")"
}

// drawText writes s starting at x and returns the column after the last
// cell written. Wide runes take two cells.
func drawText(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			rw = 1
		}
		if x+rw > maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		for i := 1; i < rw; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		x += rw
	}
	return x
}
