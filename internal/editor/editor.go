// Package editor provides document adapters the formatter can read from and
// replace: files on disk, stdin/stdout streams, and in-memory buffers.
package editor

import (
	"errors"
	"io"
	"sync"

	"mdformat/internal/utils"
)

// FileEditor edits a file on disk. SetText replaces the whole file in a
// single rename.
type FileEditor struct {
	Path string
}

func NewFileEditor(path string) *FileEditor {
	return &FileEditor{Path: path}
}

func (f *FileEditor) GetText() (string, error) {
	return utils.ReadTextFile(f.Path)
}

func (f *FileEditor) SetText(text string) error {
	return utils.WriteFileAtomic(f.Path, []byte(text))
}

// StreamEditor reads the document from In once and writes the replacement to
// Out.
type StreamEditor struct {
	In  io.Reader
	Out io.Writer

	once sync.Once
	text string
	err  error
}

func NewStreamEditor(in io.Reader, out io.Writer) *StreamEditor {
	return &StreamEditor{In: in, Out: out}
}

func (s *StreamEditor) GetText() (string, error) {
	s.once.Do(func() {
		if s.In == nil {
			s.err = errors.New("no input stream")
			return
		}
		data, err := io.ReadAll(s.In)
		s.text, s.err = string(data), err
	})
	return s.text, s.err
}

func (s *StreamEditor) SetText(text string) error {
	if s.Out == nil {
		return errors.New("no output stream")
	}
	_, err := io.WriteString(s.Out, text)
	return err
}

// BufferEditor holds the document in memory.
type BufferEditor struct {
	mu     sync.Mutex
	text   string
	writes int
}

func NewBufferEditor(text string) *BufferEditor {
	return &BufferEditor{text: text}
}

func (b *BufferEditor) GetText() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text, nil
}

func (b *BufferEditor) SetText(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	b.writes++
	return nil
}

// Writes reports how many times SetText was called.
func (b *BufferEditor) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}
