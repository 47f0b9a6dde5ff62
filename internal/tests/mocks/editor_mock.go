package mocks

import "errors"

// FailingEditor returns ReadErr from GetText and WriteErr from SetText.
type FailingEditor struct {
	Text     string
	ReadErr  error
	WriteErr error
	Writes   int
}

func (e *FailingEditor) GetText() (string, error) {
	if e.ReadErr != nil {
		return "", e.ReadErr
	}
	return e.Text, nil
}

func (e *FailingEditor) SetText(text string) error {
	e.Writes++
	if e.WriteErr != nil {
		return e.WriteErr
	}
	e.Text = text
	return nil
}

var ErrDiskFull = errors.New("disk full")
