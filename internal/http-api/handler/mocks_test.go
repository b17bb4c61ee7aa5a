package handler

import (
	"context"
	"html/template"
	"net/http"

	"artshare/internal/http-api/dto"
	"artshare/internal/http-api/middleware"
	"artshare/internal/http-api/models"
	"artshare/internal/http-api/service"
	"artshare/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in dto.RegisterInput) (*models.Account, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, username, password string) (string, *service.Principal, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*service.Principal), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Resolve(ctx context.Context, token string) (*service.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Principal), args.Error(1)
}

// MockGalleryService mocks the GalleryService interface
type MockGalleryService struct {
	mock.Mock
}

func (m *MockGalleryService) ListPublic(ctx context.Context, caller *service.Principal, order string, page int) (*dto.GalleryPage, error) {
	args := m.Called(ctx, caller, order, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GalleryPage), args.Error(1)
}

func (m *MockGalleryService) ViewArtwork(ctx context.Context, caller *service.Principal, artworkID uint) (*dto.ArtworkDetail, error) {
	args := m.Called(ctx, caller, artworkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ArtworkDetail), args.Error(1)
}

func (m *MockGalleryService) ArtistDetail(ctx context.Context, caller *service.Principal, ownerID uint) (*dto.ArtistProfile, error) {
	args := m.Called(ctx, caller, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ArtistProfile), args.Error(1)
}

func (m *MockGalleryService) MyUploads(ctx context.Context, caller *service.Principal) ([]dto.ArtworkCard, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ArtworkCard), args.Error(1)
}

// MockModerationService mocks the ModerationService interface
type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) Submit(ctx context.Context, caller *service.Principal, in dto.SubmitInput) (*models.Artwork, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artwork), args.Error(1)
}

func (m *MockModerationService) ListPending(ctx context.Context, caller *service.Principal) ([]dto.ArtworkCard, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ArtworkCard), args.Error(1)
}

func (m *MockModerationService) Decide(ctx context.Context, caller *service.Principal, artworkID uint, action string) error {
	return m.Called(ctx, caller, artworkID, action).Error(0)
}

// MockEngagementService mocks the EngagementService interface
type MockEngagementService struct {
	mock.Mock
}

func (m *MockEngagementService) PostComment(ctx context.Context, caller *service.Principal, artworkID uint, text string) (*dto.CommentView, error) {
	args := m.Called(ctx, caller, artworkID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentView), args.Error(1)
}

func (m *MockEngagementService) ToggleLike(ctx context.Context, caller *service.Principal, artworkID uint) (*dto.LikeResult, error) {
	args := m.Called(ctx, caller, artworkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LikeResult), args.Error(1)
}

func (m *MockEngagementService) LikeCount(ctx context.Context, artworkID uint) (int64, error) {
	args := m.Called(ctx, artworkID)
	return args.Get(0).(int64), args.Error(1)
}

const stubTemplates = `
{{define "register.html"}}register|{{.Error}}{{end}}
{{define "login.html"}}login|{{.Notice}}|{{.Error}}{{end}}
{{define "index.html"}}index|{{range .Featured}}{{.Title}};{{end}}{{end}}
{{define "gallery.html"}}gallery|{{.Page.Page}}|{{range .Page.Items}}{{.Title}};{{end}}{{end}}
{{define "artwork.html"}}artwork|{{.Detail.Artwork.Title}}|{{range .Detail.Comments}}{{.Body}};{{end}}{{end}}
{{define "artist_detail.html"}}artist|{{.Profile.Username}}{{end}}
{{define "my_uploads.html"}}mine|{{len .Artworks}}{{end}}
{{define "upload.html"}}upload|{{.Notice}}|{{.Error}}{{end}}
{{define "admin_approve.html"}}queue|{{len .Pending}}|{{.Error}}{{end}}
{{define "error.html"}}error|{{.Status}}|{{.Message}}{{end}}
`

// Tokens the mock auth service resolves.
const (
	artistToken = "tok-artist"
	fanToken    = "tok-fan"
	adminToken  = "tok-admin"
)

var (
	artist = &service.Principal{AccountID: 1, Username: "alice", Role: models.RoleArtist}
	fan    = &service.Principal{AccountID: 2, Username: "bob", Role: models.RoleEnthusiast}
	admin  = &service.Principal{AccountID: 3, Username: "root", Role: models.RoleAdmin}
)

type testEnv struct {
	router     *gin.Engine
	auth       *MockAuthService
	gallery    *MockGalleryService
	moderation *MockModerationService
	engagement *MockEngagementService
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		auth:       new(MockAuthService),
		gallery:    new(MockGalleryService),
		moderation: new(MockModerationService),
		engagement: new(MockEngagementService),
	}
	env.auth.On("Resolve", mock.Anything, artistToken).Return(artist, nil).Maybe()
	env.auth.On("Resolve", mock.Anything, fanToken).Return(fan, nil).Maybe()
	env.auth.On("Resolve", mock.Anything, adminToken).Return(admin, nil).Maybe()

	env.router = NewRouter(Deps{
		Log:            testutil.Logger(),
		Auth:           env.auth,
		Gallery:        env.gallery,
		Moderation:     env.moderation,
		Engagement:     env.engagement,
		Ping:           func(context.Context) error { return nil },
		RateLimiter:    middleware.NewClientRateLimiter(1000, 1000),
		UploadMaxBytes: 1 << 20,
	})
	env.router.SetHTMLTemplate(template.Must(template.New("").Funcs(TemplateFuncs()).Parse(stubTemplates)))
	return env
}

func withSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	return req
}
