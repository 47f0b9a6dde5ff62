package ui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdformat/internal/models"
	"mdformat/internal/services"
	"mdformat/internal/tests/mocks"
)

func newForm(t *testing.T, stored string) (*SettingsForm, *mocks.PluginDataRepositoryMock, services.SettingsService) {
	t.Helper()
	store := &mocks.PluginDataRepositoryMock{}
	ctx := context.Background()
	if stored != "" {
		require.NoError(t, store.Save(ctx, services.PluginID, []byte(stored)))
	}
	svc, err := services.NewServices(store)
	require.NoError(t, err)
	_, err = svc.Settings.Load(ctx)
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 24)
	t.Cleanup(screen.Fini)

	return NewSettingsForm(ctx, screen, svc.Settings), store, svc.Settings
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(f *SettingsForm, s string) {
	for _, r := range s {
		f.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func storedSettings(t *testing.T, store *mocks.PluginDataRepositoryMock) models.Settings {
	t.Helper()
	var s models.Settings
	require.NoError(t, json.Unmarshal(store.Stored(services.PluginID), &s))
	return s
}

func screenText(f *SettingsForm) string {
	sim := f.screen.(tcell.SimulationScreen)
	cells, w, _ := sim.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteRune(' ')
		}
		if (i+1)%w == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func TestSettingsForm_InitialState(t *testing.T) {
	f, _, _ := newForm(t, `{"apiKey":"sk-secret","model":"google/gemini-2.5-pro"}`)

	assert.Equal(t, RowAPIKey, f.Focus())
	assert.Equal(t, "sk-secret", f.Value(RowAPIKey))
	assert.Equal(t, models.DefaultAPIURL, f.Value(RowAPIURL))
	assert.Equal(t, "google/gemini-2.5-pro", f.SelectedOption())
	assert.Equal(t, "google/gemini-2.5-pro", f.Value(RowCustomModel))
}

func TestSettingsForm_UnknownModelSelectsCustom(t *testing.T) {
	f, _, _ := newForm(t, `{"model":"my/own-model"}`)
	assert.Equal(t, models.CustomModelOption, f.SelectedOption())
}

func TestSettingsForm_TypingAPIKeyPersistsOnEnter(t *testing.T) {
	f, store, svc := newForm(t, "")

	typeText(f, "sk-new")
	assert.Equal(t, 0, store.Saves())

	f.HandleKey(key(tcell.KeyEnter))
	assert.Equal(t, "sk-new", svc.Current().APIKey)
	assert.Equal(t, "sk-new", storedSettings(t, store).APIKey)
	assert.Equal(t, "Saved api key", f.Status())

	f.HandleKey(key(tcell.KeyEnter))
	assert.Equal(t, 1, store.Saves())
}

func TestSettingsForm_LeavingRowCommits(t *testing.T) {
	f, store, _ := newForm(t, "")

	f.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, RowAPIURL, f.Focus())
	f.HandleKey(key(tcell.KeyCtrlU))
	typeText(f, "http://localhost:8080/v1/chat/completions")
	f.HandleKey(key(tcell.KeyTab))

	assert.Equal(t, RowModel, f.Focus())
	assert.Equal(t, "http://localhost:8080/v1/chat/completions", storedSettings(t, store).APIURL)
}

func TestSettingsForm_BackspaceAndBacktab(t *testing.T) {
	f, _, svc := newForm(t, "")

	typeText(f, "abcé")
	f.HandleKey(key(tcell.KeyBackspace2))
	assert.Equal(t, "abc", f.Value(RowAPIKey))

	f.HandleKey(key(tcell.KeyBacktab))
	assert.Equal(t, RowCustomModel, f.Focus())
	assert.Equal(t, "abc", svc.Current().APIKey)
}

func TestSettingsForm_CyclingModelPersists(t *testing.T) {
	f, store, svc := newForm(t, "")
	f.HandleKey(key(tcell.KeyDown))
	f.HandleKey(key(tcell.KeyDown))
	require.Equal(t, RowModel, f.Focus())

	f.HandleKey(key(tcell.KeyRight))
	assert.Equal(t, "google/gemini-2.5-flash", f.SelectedOption())
	assert.Equal(t, "google/gemini-2.5-flash", svc.Current().Model)
	assert.Equal(t, "google/gemini-2.5-flash", storedSettings(t, store).Model)
	assert.Equal(t, "google/gemini-2.5-flash", f.Value(RowCustomModel))

	f.HandleKey(key(tcell.KeyLeft))
	f.HandleKey(key(tcell.KeyLeft))
	assert.Equal(t, models.CustomModelOption, f.SelectedOption())
	assert.Equal(t, models.DefaultModel, svc.Current().Model)
}

func TestSettingsForm_CustomModelOverridesAndResyncs(t *testing.T) {
	f, store, svc := newForm(t, "")
	for i := 0; i < 3; i++ {
		f.HandleKey(key(tcell.KeyDown))
	}
	require.Equal(t, RowCustomModel, f.Focus())

	f.HandleKey(key(tcell.KeyCtrlU))
	typeText(f, "  vendor/model-x ")
	f.HandleKey(key(tcell.KeyEnter))

	assert.Equal(t, "vendor/model-x", svc.Current().Model)
	assert.Equal(t, "vendor/model-x", storedSettings(t, store).Model)
	assert.Equal(t, "vendor/model-x", f.Value(RowCustomModel))
	assert.Equal(t, models.CustomModelOption, f.SelectedOption())

	f.HandleKey(key(tcell.KeyCtrlU))
	typeText(f, "anthropic/claude-sonnet-4")
	f.HandleKey(key(tcell.KeyEnter))
	assert.Equal(t, "anthropic/claude-sonnet-4", f.SelectedOption())
}

func TestSettingsForm_EscCommitsAndCloses(t *testing.T) {
	f, store, _ := newForm(t, "")
	typeText(f, "k")
	f.HandleKey(key(tcell.KeyEsc))

	assert.True(t, f.Done())
	assert.Equal(t, "k", storedSettings(t, store).APIKey)
}

func TestSettingsForm_SaveErrorShownInStatus(t *testing.T) {
	f, store, _ := newForm(t, "")
	store.SaveFunc = func(ctx context.Context, pluginID string, data []byte) error {
		return errors.New("database is locked")
	}

	typeText(f, "k")
	f.HandleKey(key(tcell.KeyEnter))
	assert.Contains(t, f.Status(), "database is locked")
	assert.True(t, f.statusErr)
}

func TestSettingsForm_RenderMasksAPIKey(t *testing.T) {
	f, _, _ := newForm(t, `{"apiKey":"sk-secret"}`)
	f.Render()

	out := screenText(f)
	assert.Contains(t, out, "Format Markdown settings")
	assert.Contains(t, out, "*********")
	assert.NotContains(t, out, "sk-secret")
	assert.Contains(t, out, "Claude 3.7 Sonnet (anthropic/claude-3.7-sonnet)")
}

func TestSettingsForm_RunStopsOnEsc(t *testing.T) {
	f, _, _ := newForm(t, "")
	sim := f.screen.(tcell.SimulationScreen)
	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyEsc, 0, tcell.ModNone)

	require.NoError(t, f.Run())
	assert.True(t, f.Done())
	assert.Equal(t, "x", f.Value(RowAPIKey))
}
