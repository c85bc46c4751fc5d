package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/middleware"
)

type authServiceStub struct {
	registerFn func(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	loginFn    func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*entities.AuthResponse, error)
	logoutFn   func(ctx context.Context, sessionID string) error
	confirmFn  func(ctx context.Context, code, errorDescription string) *entities.ConfirmationResult
	resendFn   func(ctx context.Context, email string) error
	meFn       func(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
}

func (s authServiceStub) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	return s.registerFn(ctx, input)
}
func (s authServiceStub) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.loginFn(ctx, input)
}
func (s authServiceStub) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	return s.refreshFn(ctx, refreshToken)
}
func (s authServiceStub) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}
func (s authServiceStub) ConfirmEmail(ctx context.Context, code, errorDescription string) *entities.ConfirmationResult {
	return s.confirmFn(ctx, code, errorDescription)
}
func (s authServiceStub) ResendConfirmation(ctx context.Context, email string) error {
	return s.resendFn(ctx, email)
}
func (s authServiceStub) Me(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	return s.meFn(ctx, userID)
}

type adminServiceStub struct {
	approveFn        func(ctx context.Context, id uuid.UUID) error
	premiumFn        func(ctx context.Context, id uuid.UUID, isPremium bool) error
	updateFn         func(ctx context.Context, id uuid.UUID, input entities.UpdateBusinessInput) error
	listBusinessesFn func(ctx context.Context, filter entities.BusinessFilter) ([]*entities.Business, error)
	getBusinessFn    func(ctx context.Context, id uuid.UUID) (*entities.Business, error)
	createEventFn    func(ctx context.Context, input entities.CreateEventInput) (*entities.Event, error)
	listEventsFn     func(ctx context.Context) ([]*entities.Event, error)
	deleteEventFn    func(ctx context.Context, id uuid.UUID) error
	statsFn          func(ctx context.Context) (*entities.DashboardStats, error)
}

func (s adminServiceStub) ApproveBusiness(ctx context.Context, id uuid.UUID) error {
	return s.approveFn(ctx, id)
}
func (s adminServiceStub) TogglePremium(ctx context.Context, id uuid.UUID, isPremium bool) error {
	return s.premiumFn(ctx, id, isPremium)
}
func (s adminServiceStub) UpdateBusiness(ctx context.Context, id uuid.UUID, input entities.UpdateBusinessInput) error {
	return s.updateFn(ctx, id, input)
}
func (s adminServiceStub) ListBusinesses(ctx context.Context, filter entities.BusinessFilter) ([]*entities.Business, error) {
	return s.listBusinessesFn(ctx, filter)
}
func (s adminServiceStub) GetBusiness(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	return s.getBusinessFn(ctx, id)
}
func (s adminServiceStub) CreateEvent(ctx context.Context, input entities.CreateEventInput) (*entities.Event, error) {
	return s.createEventFn(ctx, input)
}
func (s adminServiceStub) ListEvents(ctx context.Context) ([]*entities.Event, error) {
	return s.listEventsFn(ctx)
}
func (s adminServiceStub) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.deleteEventFn(ctx, id)
}
func (s adminServiceStub) DashboardStats(ctx context.Context) (*entities.DashboardStats, error) {
	return s.statsFn(ctx)
}

type uploadServiceStub struct {
	imageFn  func(ctx context.Context, ownerID, businessID uuid.UUID, kind entities.ImageKind, file entities.UploadFile) (*entities.UploadedImage, error)
	posterFn func(ctx context.Context, file entities.UploadFile) (*entities.UploadedImage, error)
}

func (s uploadServiceStub) UploadImage(ctx context.Context, ownerID, businessID uuid.UUID, kind entities.ImageKind, file entities.UploadFile) (*entities.UploadedImage, error) {
	return s.imageFn(ctx, ownerID, businessID, kind, file)
}
func (s uploadServiceStub) UploadPoster(ctx context.Context, file entities.UploadFile) (*entities.UploadedImage, error) {
	return s.posterFn(ctx, file)
}

type designServiceStub struct {
	listOwnedFn func(ctx context.Context, ownerID uuid.UUID) ([]*entities.Business, error)
	getFn       func(ctx context.Context, ownerID, businessID uuid.UUID) (*entities.DesignView, error)
	saveFn      func(ctx context.Context, ownerID, businessID uuid.UUID, input entities.SaveDesignInput) error
}

func (s designServiceStub) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*entities.Business, error) {
	return s.listOwnedFn(ctx, ownerID)
}
func (s designServiceStub) GetDesign(ctx context.Context, ownerID, businessID uuid.UUID) (*entities.DesignView, error) {
	return s.getFn(ctx, ownerID, businessID)
}
func (s designServiceStub) SaveDesign(ctx context.Context, ownerID, businessID uuid.UUID, input entities.SaveDesignInput) error {
	return s.saveFn(ctx, ownerID, businessID, input)
}

type galleryServiceStub struct {
	listFn         func(ctx context.Context, ownerID, businessID uuid.UUID) ([]entities.BusinessImage, error)
	reorderFn      func(ctx context.Context, ownerID, businessID uuid.UUID, from, to int) ([]entities.BusinessImage, error)
	replaceOrderFn func(ctx context.Context, ownerID, businessID uuid.UUID, ids []uuid.UUID) ([]entities.BusinessImage, error)
	updateFn       func(ctx context.Context, ownerID, businessID, imageID uuid.UUID, input entities.UpdateImageMetadataInput) error
	uploadFn       func(ctx context.Context, ownerID, businessID uuid.UUID, files []entities.UploadFile) (*entities.UploadResult, error)
	deleteFn       func(ctx context.Context, ownerID, businessID, imageID uuid.UUID) error
}

func (s galleryServiceStub) List(ctx context.Context, ownerID, businessID uuid.UUID) ([]entities.BusinessImage, error) {
	return s.listFn(ctx, ownerID, businessID)
}
func (s galleryServiceStub) Reorder(ctx context.Context, ownerID, businessID uuid.UUID, from, to int) ([]entities.BusinessImage, error) {
	return s.reorderFn(ctx, ownerID, businessID, from, to)
}
func (s galleryServiceStub) ReplaceOrder(ctx context.Context, ownerID, businessID uuid.UUID, ids []uuid.UUID) ([]entities.BusinessImage, error) {
	return s.replaceOrderFn(ctx, ownerID, businessID, ids)
}
func (s galleryServiceStub) UpdateMetadata(ctx context.Context, ownerID, businessID, imageID uuid.UUID, input entities.UpdateImageMetadataInput) error {
	return s.updateFn(ctx, ownerID, businessID, imageID, input)
}
func (s galleryServiceStub) Upload(ctx context.Context, ownerID, businessID uuid.UUID, files []entities.UploadFile) (*entities.UploadResult, error) {
	return s.uploadFn(ctx, ownerID, businessID, files)
}
func (s galleryServiceStub) Delete(ctx context.Context, ownerID, businessID, imageID uuid.UUID) error {
	return s.deleteFn(ctx, ownerID, businessID, imageID)
}

type previewServiceStub struct {
	previewFn func(ctx context.Context, ownerID, businessID uuid.UUID, variant string) ([]byte, error)
	publicFn  func(ctx context.Context, businessID uuid.UUID) ([]byte, error)
}

func (s previewServiceStub) Preview(ctx context.Context, ownerID, businessID uuid.UUID, variant string) ([]byte, error) {
	return s.previewFn(ctx, ownerID, businessID, variant)
}
func (s previewServiceStub) PublicProfile(ctx context.Context, businessID uuid.UUID) ([]byte, error) {
	return s.publicFn(ctx, businessID)
}

// asUser stands in for AuthMiddleware
func asUser(userID uuid.UUID, role entities.Role, sessionID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserRoleKey, string(role))
		c.Set(middleware.SessionIDKey, sessionID)
		c.Next()
	}
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			_ = json.NewEncoder(&buf).Encode(v)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type formFile struct {
	field string
	name  string
	data  []byte
}

func doMultipart(t *testing.T, r http.Handler, path string, files ...formFile) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func doForm(r http.Handler, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
