package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/audionode/internal/api/models"
	"github.com/smazurov/audionode/internal/capture"
	"github.com/smazurov/audionode/internal/config"
)

// PresetIDInput identifies a preset in the URL path.
type PresetIDInput struct {
	ID string `path:"id" example:"podcast" doc:"Preset identifier"`
}

// PresetInput wraps a preset body for create and update requests.
type PresetInput struct {
	ID   string `path:"id" example:"podcast" doc:"Preset identifier"`
	Body config.PresetConfig
}

// CreatePresetInput wraps a preset body for creation.
type CreatePresetInput struct {
	Body config.PresetConfig
}

// PresetResponse wraps a single preset.
type PresetResponse struct {
	Body config.PresetConfig
}

// PresetsResponse wraps the full preset list.
type PresetsResponse struct {
	Body struct {
		Presets map[string]config.PresetConfig `json:"presets" doc:"Presets keyed by id"`
		Count   int                            `json:"count" example:"2" doc:"Number of presets"`
	}
}

// registerPresetRoutes registers preset CRUD and start endpoints
func (s *Server) registerPresetRoutes() {
	// List presets
	huma.Register(s.api, huma.Operation{
		OperationID: "list-presets",
		Method:      http.MethodGet,
		Path:        "/api/presets",
		Summary:     "List Presets",
		Description: "List all saved capture presets",
		Tags:        []string{"presets"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*PresetsResponse, error) {
		presets := s.presets.GetPresets()
		resp := &PresetsResponse{}
		resp.Body.Presets = presets
		resp.Body.Count = len(presets)
		return resp, nil
	})

	// Create preset
	huma.Register(s.api, huma.Operation{
		OperationID: "create-preset",
		Method:      http.MethodPost,
		Path:        "/api/presets",
		Summary:     "Create Preset",
		Description: "Save a capture preset that can be started by id",
		Tags:        []string{"presets"},
		Errors:      []int{400, 401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *CreatePresetInput) (*PresetResponse, error) {
		if err := s.presets.AddPreset(input.Body); err != nil {
			return nil, huma.Error400BadRequest("Failed to create preset", err)
		}
		preset, _ := s.presets.GetPreset(input.Body.ID)
		return &PresetResponse{Body: preset}, nil
	})

	// Get one preset
	huma.Register(s.api, huma.Operation{
		OperationID: "get-preset",
		Method:      http.MethodGet,
		Path:        "/api/presets/{id}",
		Summary:     "Get Preset",
		Description: "Get one saved preset",
		Tags:        []string{"presets"},
		Errors:      []int{401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *PresetIDInput) (*PresetResponse, error) {
		preset, ok := s.presets.GetPreset(input.ID)
		if !ok {
			return nil, huma.Error404NotFound(fmt.Sprintf("Preset %q not found", input.ID))
		}
		return &PresetResponse{Body: preset}, nil
	})

	// Update preset
	huma.Register(s.api, huma.Operation{
		OperationID: "update-preset",
		Method:      http.MethodPut,
		Path:        "/api/presets/{id}",
		Summary:     "Update Preset",
		Description: "Update a saved preset. Omitted fields keep their current values.",
		Tags:        []string{"presets"},
		Errors:      []int{400, 401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *PresetInput) (*PresetResponse, error) {
		if err := s.presets.UpdatePreset(input.ID, input.Body); err != nil {
			return nil, huma.Error404NotFound("Failed to update preset", err)
		}
		preset, _ := s.presets.GetPreset(input.ID)
		return &PresetResponse{Body: preset}, nil
	})

	// Delete preset
	huma.Register(s.api, huma.Operation{
		OperationID: "delete-preset",
		Method:      http.MethodDelete,
		Path:        "/api/presets/{id}",
		Summary:     "Delete Preset",
		Description: "Delete a saved preset",
		Tags:        []string{"presets"},
		Errors:      []int{401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *PresetIDInput) (*struct{}, error) {
		if err := s.presets.RemovePreset(input.ID); err != nil {
			return nil, huma.Error404NotFound("Failed to delete preset", err)
		}
		return &struct{}{}, nil
	})

	// Start a capture session from a preset
	huma.Register(s.api, huma.Operation{
		OperationID: "start-preset",
		Method:      http.MethodPost,
		Path:        "/api/presets/{id}/start",
		Summary:     "Start Preset",
		Description: "Start a capture session using a saved preset. The session id is the preset id.",
		Tags:        []string{"presets"},
		Errors:      []int{400, 401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *PresetIDInput) (*models.SessionResponse, error) {
		preset, ok := s.presets.GetPreset(input.ID)
		if !ok {
			return nil, huma.Error404NotFound(fmt.Sprintf("Preset %q not found", input.ID))
		}
		if !preset.Enabled {
			return nil, huma.Error400BadRequest(fmt.Sprintf("Preset %q is disabled", input.ID))
		}

		info, err := s.captureService.StartSession(capture.StartRequest{
			ID:            preset.ID,
			Device:        preset.Device,
			Frequency:     preset.Frequency,
			Format:        preset.Format,
			BufferSamples: preset.BufferSamples,
			MaxDuration:   time.Duration(preset.MaxDuration) * time.Second,
		})
		if err != nil {
			return nil, huma.Error400BadRequest("Failed to start capture", err)
		}
		return &models.SessionResponse{Body: toAPISession(info)}, nil
	})

	s.logger.Info("Preset routes registered")
}
