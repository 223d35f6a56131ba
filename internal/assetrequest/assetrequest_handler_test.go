package assetrequest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	asseterrors "go-assethub/internal/asset/errors"
	"go-assethub/internal/assetrequest"
	assetrequesterrors "go-assethub/internal/assetrequest/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeRequestService struct {
	submitFn           func(ctx context.Context, requesterEmail string, req assetrequest.SubmitRequest) (assetrequest.RequestResponse, error)
	listForOwnerFn     func(ctx context.Context, hrEmail string, f assetrequest.ListFilter) ([]assetrequest.RequestResponse, int64, error)
	listForRequesterFn func(ctx context.Context, requesterEmail string, f assetrequest.ListFilter) ([]assetrequest.RequestResponse, int64, error)
	approveFn          func(ctx context.Context, hrEmail, id string) (assetrequest.RequestResponse, error)
	rejectFn           func(ctx context.Context, hrEmail, id string) (assetrequest.RequestResponse, error)
}

func (f *fakeRequestService) Submit(ctx context.Context, requesterEmail string, req assetrequest.SubmitRequest) (assetrequest.RequestResponse, error) {
	return f.submitFn(ctx, requesterEmail, req)
}
func (f *fakeRequestService) ListForOwner(ctx context.Context, hrEmail string, flt assetrequest.ListFilter) ([]assetrequest.RequestResponse, int64, error) {
	return f.listForOwnerFn(ctx, hrEmail, flt)
}
func (f *fakeRequestService) ListForRequester(ctx context.Context, requesterEmail string, flt assetrequest.ListFilter) ([]assetrequest.RequestResponse, int64, error) {
	return f.listForRequesterFn(ctx, requesterEmail, flt)
}
func (f *fakeRequestService) Approve(ctx context.Context, hrEmail, id string) (assetrequest.RequestResponse, error) {
	return f.approveFn(ctx, hrEmail, id)
}
func (f *fakeRequestService) Reject(ctx context.Context, hrEmail, id string) (assetrequest.RequestResponse, error) {
	return f.rejectFn(ctx, hrEmail, id)
}

func TestRequestHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		assetID := uuid.New().String()
		svc := &fakeRequestService{
			submitFn: func(ctx context.Context, requesterEmail string, req assetrequest.SubmitRequest) (assetrequest.RequestResponse, error) {
				assert.Equal(t, "emp@acme.test", requesterEmail)
				assert.Equal(t, assetID, req.AssetID)
				return assetrequest.RequestResponse{
					ID:            uuid.New().String(),
					AssetID:       req.AssetID,
					Note:          req.Note,
					RequestStatus: assetrequest.StatusPending,
				}, nil
			},
		}

		h := assetrequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"asset_id":"` + assetID + `","note":"for onboarding"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/asset-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("email", "emp@acme.test")
		c.Set("role", "employee")

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got assetrequest.RequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, assetrequest.StatusPending, got.RequestStatus)
	})

	t.Run("negative missing note fails validation", func(t *testing.T) {
		svc := &fakeRequestService{
			submitFn: func(ctx context.Context, requesterEmail string, req assetrequest.SubmitRequest) (assetrequest.RequestResponse, error) {
				t.Fatal("service must not be reached on invalid input")
				return assetrequest.RequestResponse{}, nil
			},
		}

		h := assetrequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"asset_id":"` + uuid.New().String() + `"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/asset-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("email", "emp@acme.test")

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
	})
}

func TestRequestHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeRequestService{
			approveFn: func(ctx context.Context, hrEmail, targetID string) (assetrequest.RequestResponse, error) {
				assert.Equal(t, "hr@acme.test", hrEmail)
				assert.Equal(t, id, targetID)
				return assetrequest.RequestResponse{ID: targetID, RequestStatus: assetrequest.StatusApproved}, nil
			},
		}

		h := assetrequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/asset-requests/"+id+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("email", "hr@acme.test")
		c.Set("role", "hr")

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative out of stock maps to conflict", func(t *testing.T) {
		svc := &fakeRequestService{
			approveFn: func(ctx context.Context, hrEmail, targetID string) (assetrequest.RequestResponse, error) {
				return assetrequest.RequestResponse{}, asseterrors.ErrOutOfStock
			},
		}

		h := assetrequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPatch, "/asset-requests/"+id+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("email", "hr@acme.test")

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("negative already processed maps to invalid state", func(t *testing.T) {
		svc := &fakeRequestService{
			approveFn: func(ctx context.Context, hrEmail, targetID string) (assetrequest.RequestResponse, error) {
				return assetrequest.RequestResponse{}, assetrequesterrors.ErrAlreadyProcessed
			},
		}

		h := assetrequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPatch, "/asset-requests/"+id+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("email", "hr@acme.test")

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestRequestHandler_GetMine(t *testing.T) {
	t.Run("success paginates", func(t *testing.T) {
		svc := &fakeRequestService{
			listForRequesterFn: func(ctx context.Context, requesterEmail string, flt assetrequest.ListFilter) ([]assetrequest.RequestResponse, int64, error) {
				assert.Equal(t, "emp@acme.test", requesterEmail)
				assert.Equal(t, 5, flt.Limit)
				assert.Equal(t, 5, flt.Skip)
				return []assetrequest.RequestResponse{{ID: uuid.New().String()}}, 11, nil
			},
		}

		h := assetrequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/asset-requests/my?page=2&page_size=5", nil)
		c.Set("email", "emp@acme.test")

		h.GetMine(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})
}
