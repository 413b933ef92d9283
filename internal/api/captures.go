package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/audionode/internal/api/models"
	"github.com/smazurov/audionode/internal/capture"
)

// SessionIDInput identifies a capture session in the URL path.
type SessionIDInput struct {
	ID string `path:"id" example:"take1" doc:"Session identifier"`
}

// StartCaptureInput wraps the start request body.
type StartCaptureInput struct {
	Body models.StartCaptureBody
}

// registerCaptureRoutes registers capture session endpoints
func (s *Server) registerCaptureRoutes() {
	// List sessions
	huma.Register(s.api, huma.Operation{
		OperationID: "list-captures",
		Method:      http.MethodGet,
		Path:        "/api/captures",
		Summary:     "List Capture Sessions",
		Description: "List all known capture sessions and their state",
		Tags:        []string{"captures"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *struct{}) (*models.SessionsResponse, error) {
		sessions := s.captureService.ListSessions()
		resp := &models.SessionsResponse{}
		resp.Body.Sessions = make([]models.SessionData, 0, len(sessions))
		for _, info := range sessions {
			resp.Body.Sessions = append(resp.Body.Sessions, toAPISession(info))
		}
		resp.Body.Count = len(sessions)
		return resp, nil
	})

	// Start a session
	huma.Register(s.api, huma.Operation{
		OperationID: "start-capture",
		Method:      http.MethodPost,
		Path:        "/api/captures",
		Summary:     "Start Capture",
		Description: "Open a capture device and start recording to a WAV file",
		Tags:        []string{"captures"},
		Errors:      []int{400, 401, 409},
		Security:    withAuth(),
	}, func(ctx context.Context, input *StartCaptureInput) (*models.SessionResponse, error) {
		info, err := s.captureService.StartSession(capture.StartRequest{
			ID:            input.Body.ID,
			Device:        input.Body.Device,
			Frequency:     input.Body.Frequency,
			Format:        input.Body.Format,
			BufferSamples: input.Body.BufferSamples,
			MaxDuration:   time.Duration(input.Body.MaxDuration) * time.Second,
		})
		if err != nil {
			return nil, huma.Error400BadRequest("Failed to start capture", err)
		}
		return &models.SessionResponse{Body: toAPISession(info)}, nil
	})

	// Get one session
	huma.Register(s.api, huma.Operation{
		OperationID: "get-capture",
		Method:      http.MethodGet,
		Path:        "/api/captures/{id}",
		Summary:     "Get Capture Session",
		Description: "Get the state of one capture session",
		Tags:        []string{"captures"},
		Errors:      []int{401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *SessionIDInput) (*models.SessionResponse, error) {
		info, ok := s.captureService.GetSession(input.ID)
		if !ok {
			return nil, huma.Error404NotFound(fmt.Sprintf("Session %q not found", input.ID))
		}
		return &models.SessionResponse{Body: toAPISession(info)}, nil
	})

	// Stop a session
	huma.Register(s.api, huma.Operation{
		OperationID: "stop-capture",
		Method:      http.MethodPost,
		Path:        "/api/captures/{id}/stop",
		Summary:     "Stop Capture",
		Description: "Stop a recording session and finalize its WAV file",
		Tags:        []string{"captures"},
		Errors:      []int{401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *SessionIDInput) (*models.SessionResponse, error) {
		info, err := s.captureService.StopSession(input.ID)
		if err != nil {
			return nil, huma.Error404NotFound("Failed to stop capture", err)
		}
		return &models.SessionResponse{Body: toAPISession(info)}, nil
	})

	// Remove a session
	huma.Register(s.api, huma.Operation{
		OperationID: "remove-capture",
		Method:      http.MethodDelete,
		Path:        "/api/captures/{id}",
		Summary:     "Remove Capture",
		Description: "Forget a finished session and delete its capture file",
		Tags:        []string{"captures"},
		Errors:      []int{400, 401},
		Security:    withAuth(),
	}, func(ctx context.Context, input *SessionIDInput) (*struct{}, error) {
		if err := s.captureService.RemoveSession(input.ID); err != nil {
			return nil, huma.Error400BadRequest("Failed to remove capture", err)
		}
		return &struct{}{}, nil
	})

	// Download the capture file
	huma.Register(s.api, huma.Operation{
		OperationID: "download-capture",
		Method:      http.MethodGet,
		Path:        "/api/captures/{id}/download",
		Summary:     "Download Capture",
		Description: "Download the session's WAV file. Recording sessions must be stopped first.",
		Tags:        []string{"captures"},
		Errors:      []int{400, 401, 404},
		Security:    withAuth(),
	}, func(ctx context.Context, input *SessionIDInput) (*huma.StreamResponse, error) {
		info, ok := s.captureService.GetSession(input.ID)
		if !ok {
			return nil, huma.Error404NotFound(fmt.Sprintf("Session %q not found", input.ID))
		}
		if info.State == capture.StateRecording {
			return nil, huma.Error400BadRequest("Session is still recording")
		}

		file, err := os.Open(info.Path)
		if err != nil {
			return nil, huma.Error404NotFound("Capture file missing", err)
		}

		return &huma.StreamResponse{
			Body: func(ctx huma.Context) {
				defer file.Close()
				ctx.SetHeader("Content-Type", "audio/wav")
				ctx.SetHeader("Content-Disposition", `attachment; filename="`+info.ID+`.wav"`)
				if _, err := io.Copy(ctx.BodyWriter(), file); err != nil {
					s.logger.Warn("Capture download interrupted", "session_id", info.ID, "error", err)
				}
			},
		}, nil
	})

	s.logger.Info("Capture routes registered")
}

func toAPISession(info capture.SessionInfo) models.SessionData {
	return models.SessionData{
		ID:        info.ID,
		Device:    info.Device,
		Frequency: info.Frequency,
		Format:    info.Format,
		State:     string(info.State),
		Path:      info.Path,
		StartedAt: info.StartedAt,
		StoppedAt: info.StoppedAt,
		Samples:   info.Samples,
		Error:     info.Error,
	}
}
