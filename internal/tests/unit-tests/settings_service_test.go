package unit_tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdformat/internal/assets"
	"mdformat/internal/models"
	"mdformat/internal/services"
	"mdformat/internal/tests/mocks"
)

func newSettingsService(t *testing.T, repo *mocks.PluginDataRepositoryMock) services.SettingsService {
	t.Helper()
	catalog, err := services.NewModelCatalogService(assets.ModelsData)
	require.NoError(t, err)
	return services.NewSettingsService(repo, catalog)
}

func TestSettingsService_Load_DefaultsWhenNothingStored(t *testing.T) {
	svc := newSettingsService(t, &mocks.PluginDataRepositoryMock{})

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), got)
	assert.Equal(t, "", got.APIKey)
	assert.Equal(t, models.DefaultAPIURL, got.APIURL)
	assert.Equal(t, models.DefaultModel, got.Model)
}

func TestSettingsService_SaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PluginDataRepositoryMock{}
	svc := newSettingsService(t, repo)

	require.NoError(t, svc.SetAPIKey(ctx, "k"))
	require.NoError(t, svc.SetAPIURL(ctx, "u"))
	require.NoError(t, svc.SetModel(ctx, "m"))

	reloaded := newSettingsService(t, repo)
	got, err := reloaded.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Settings{APIKey: "k", APIURL: "u", Model: "m"}, got)
}

func TestSettingsService_Load_MergesOverDefaults(t *testing.T) {
	repo := &mocks.PluginDataRepositoryMock{
		LoadFunc: func(ctx context.Context, pluginID string) ([]byte, error) {
			assert.Equal(t, services.PluginID, pluginID)
			return []byte(`{"apiKey":"sk-1","openRouterApiKey":"legacy","extra":42}`), nil
		},
	}
	svc := newSettingsService(t, repo)

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-1", got.APIKey)
	assert.Equal(t, models.DefaultAPIURL, got.APIURL)
	assert.Equal(t, models.DefaultModel, got.Model)
	assert.Equal(t, got, svc.Current())
}

func TestSettingsService_Load_StoredEmptyStringWins(t *testing.T) {
	repo := &mocks.PluginDataRepositoryMock{
		LoadFunc: func(ctx context.Context, pluginID string) ([]byte, error) {
			return []byte(`{"apiUrl":""}`), nil
		},
	}
	svc := newSettingsService(t, repo)

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", got.APIURL)
}

func TestSettingsService_Load_NullDocument(t *testing.T) {
	repo := &mocks.PluginDataRepositoryMock{
		LoadFunc: func(ctx context.Context, pluginID string) ([]byte, error) {
			return []byte(`null`), nil
		},
	}
	svc := newSettingsService(t, repo)

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), got)
}

func TestSettingsService_Load_Errors(t *testing.T) {
	t.Run("store error", func(t *testing.T) {
		repo := &mocks.PluginDataRepositoryMock{
			LoadFunc: func(ctx context.Context, pluginID string) ([]byte, error) {
				return nil, errors.New("database error")
			},
		}
		_, err := newSettingsService(t, repo).Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})

	t.Run("corrupt json", func(t *testing.T) {
		repo := &mocks.PluginDataRepositoryMock{
			LoadFunc: func(ctx context.Context, pluginID string) ([]byte, error) {
				return []byte(`{"apiKey":`), nil
			},
		}
		svc := newSettingsService(t, repo)
		_, err := svc.Load(context.Background())
		require.Error(t, err)
		assert.Equal(t, models.DefaultSettings(), svc.Current())
	})
}

func TestSettingsService_EverySetterPersistsFullObject(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PluginDataRepositoryMock{}
	svc := newSettingsService(t, repo)

	require.NoError(t, svc.SetAPIKey(ctx, "sk-abc"))
	assert.Equal(t, 1, repo.Saves())

	var stored map[string]string
	require.NoError(t, json.Unmarshal(repo.Stored(services.PluginID), &stored))
	assert.Equal(t, map[string]string{
		"apiKey": "sk-abc",
		"apiUrl": models.DefaultAPIURL,
		"model":  models.DefaultModel,
	}, stored)

	require.NoError(t, svc.SetAPIURL(ctx, "not a url"))
	assert.Equal(t, 2, repo.Saves())
	assert.Equal(t, "not a url", svc.Current().APIURL)
}

func TestSettingsService_SetModel_Trims(t *testing.T) {
	svc := newSettingsService(t, &mocks.PluginDataRepositoryMock{})
	require.NoError(t, svc.SetModel(context.Background(), "  openai/gpt-4o \n"))
	assert.Equal(t, "openai/gpt-4o", svc.Current().Model)
}

func TestSettingsService_SaveError(t *testing.T) {
	repo := &mocks.PluginDataRepositoryMock{
		SaveFunc: func(ctx context.Context, pluginID string, data []byte) error {
			return errors.New("update error")
		},
	}
	svc := newSettingsService(t, repo)

	err := svc.SetAPIKey(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update error")
}

func TestSettingsService_ModelOptions(t *testing.T) {
	ctx := context.Background()
	svc := newSettingsService(t, &mocks.PluginDataRepositoryMock{})

	opts := svc.ModelOptions()
	require.Len(t, opts, 5)
	assert.Equal(t, "anthropic/claude-3.7-sonnet", opts[0].Key)
	assert.Equal(t, "google/gemini-2.5-pro", opts[3].Key)
	assert.Equal(t, models.CustomModelOption, opts[4].Key)

	assert.Equal(t, models.DefaultModel, svc.SelectedOption())

	require.NoError(t, svc.SetModel(ctx, "mistralai/mistral-large"))
	assert.Equal(t, models.CustomModelOption, svc.SelectedOption())

	require.NoError(t, svc.SelectModelOption(ctx, models.CustomModelOption))
	assert.Equal(t, "mistralai/mistral-large", svc.Current().Model, "sentinel must not overwrite the model")

	require.NoError(t, svc.SelectModelOption(ctx, "google/gemini-2.5-flash"))
	assert.Equal(t, "google/gemini-2.5-flash", svc.Current().Model)
	assert.Equal(t, "google/gemini-2.5-flash", svc.SelectedOption())

	assert.Error(t, svc.SelectModelOption(ctx, "unknown/model"))
}
