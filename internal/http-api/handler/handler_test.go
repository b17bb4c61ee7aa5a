package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"artshare/internal/http-api/dto"
	"artshare/internal/http-api/middleware"
	"artshare/internal/http-api/models"
	"artshare/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postForm(path string, values url.Values) *http.Request {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func serve(env *testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	env := newTestEnv()
	form := dto.RegisterInput{FirstName: "Alice", Surname: "Liddell", Username: "alice", Email: "alice@example.com", Password: "password123", Role: "artist"}
	env.auth.On("Register", mock.Anything, form).Return(&models.Account{ID: 1, Username: "alice"}, nil)

	w := serve(env, postForm("/register", url.Values{
		"first_name": {"Alice"}, "surname": {"Liddell"}, "username": {"alice"},
		"email": {"alice@example.com"}, "password": {"password123"}, "role": {"artist"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?registered=1", w.Header().Get("Location"))
	env.auth.AssertExpectations(t)
}

func TestRegister_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"duplicate", service.ErrDuplicateAccount, http.StatusConflict, "already exists"},
		{"validation", &service.ValidationError{Field: "username", Message: "is required"}, http.StatusBadRequest, "Username is required"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "error|500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.auth.On("Register", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(env, postForm("/register", url.Values{"username": {"alice"}}))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}

func TestLogin_SetsCookie(t *testing.T) {
	env := newTestEnv()
	env.auth.On("Authenticate", mock.Anything, "alice", "password123").Return("signed", artist, nil)

	w := serve(env, postForm("/login", url.Values{"username": {"alice"}, "password": {"password123"}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, middleware.SessionCookieName+"=signed")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=Lax")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv()
	env.auth.On("Authenticate", mock.Anything, "alice", "nope").Return("", nil, service.ErrAuthentication)

	w := serve(env, postForm("/login", url.Values{"username": {"alice"}, "password": {"nope"}}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password.")
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestLogout(t *testing.T) {
	env := newTestEnv()
	env.auth.On("Logout", mock.Anything, artistToken).Return(nil)

	req, _ := http.NewRequest(http.MethodGet, "/logout", nil)
	w := serve(env, withSession(req, artistToken))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	env.auth.AssertExpectations(t)
}

func TestGalleryPages(t *testing.T) {
	env := newTestEnv()
	env.gallery.On("ListPublic", mock.Anything, (*service.Principal)(nil), service.OrderRandom, 1).
		Return(dto.NewGalleryPage([]dto.ArtworkCard{{ID: 1, Title: "Sunset"}}, 1, 1, 1), nil)
	env.gallery.On("ListPublic", mock.Anything, (*service.Principal)(nil), service.OrderRecent, 2).
		Return(dto.NewGalleryPage([]dto.ArtworkCard{{ID: 2, Title: "Dawn"}}, 25, 2, 24), nil)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := serve(env, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "index|Sunset;", w.Body.String())

	req, _ = http.NewRequest(http.MethodGet, "/gallery?page=2", nil)
	w = serve(env, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gallery|2|Dawn;", w.Body.String())
}

func TestArtworkPage(t *testing.T) {
	env := newTestEnv()
	detail := &dto.ArtworkDetail{
		Artwork:  dto.ArtworkCard{ID: 4, Title: "Sunset"},
		Comments: []dto.CommentView{{Body: "Beautiful"}},
	}
	env.gallery.On("ViewArtwork", mock.Anything, fan, uint(4)).Return(detail, nil)
	env.gallery.On("ViewArtwork", mock.Anything, (*service.Principal)(nil), uint(5)).Return(nil, service.ErrNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/artwork/4", nil)
	w := serve(env, withSession(req, fanToken))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "artwork|Sunset|Beautiful;", w.Body.String())

	req, _ = http.NewRequest(http.MethodGet, "/artwork/5", nil)
	w = serve(env, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/artwork/abc", nil)
	w = serve(env, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env.gallery.AssertNumberOfCalls(t, "ViewArtwork", 2)
}

func TestMyUploads_Gate(t *testing.T) {
	env := newTestEnv()
	env.gallery.On("MyUploads", mock.Anything, artist).Return([]dto.ArtworkCard{{ID: 1}, {ID: 2}}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/my_uploads", nil)
	w := serve(env, withSession(req, artistToken))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mine|2", w.Body.String())

	req, _ = http.NewRequest(http.MethodGet, "/my_uploads", nil)
	w = serve(env, withSession(req, fanToken))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func multipartUpload(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", "Sunset"))
	require.NoError(t, writer.WriteField("description", "Warm"))
	part, err := writer.CreateFormFile("image", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUpload_Gate(t *testing.T) {
	env := newTestEnv()

	w := serve(env, multipartUpload(t, "a.png", []byte("x")))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = serve(env, withSession(multipartUpload(t, "a.png", []byte("x")), fanToken))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	env.moderation.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_Success(t *testing.T) {
	env := newTestEnv()
	env.moderation.On("Submit", mock.Anything, artist, mock.MatchedBy(func(in dto.SubmitInput) bool {
		return in.Title == "Sunset" && in.Description == "Warm" && in.FileName == "sunset.png" && in.Image != nil
	})).Return(&models.Artwork{ID: 9, Title: "Sunset", Pending: true}, nil)

	w := serve(env, withSession(multipartUpload(t, "sunset.png", []byte("\x89PNG\r\n\x1a\n")), artistToken))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "waiting for approval")
	env.moderation.AssertExpectations(t)
}

func TestUpload_InvalidType(t *testing.T) {
	env := newTestEnv()
	env.moderation.On("Submit", mock.Anything, artist, mock.Anything).Return(nil, service.ErrInvalidFileType)

	w := serve(env, withSession(multipartUpload(t, "notes.txt", []byte("hello")), artistToken))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only png, jpg, jpeg and gif")
}

func TestUpload_MissingImage(t *testing.T) {
	env := newTestEnv()

	req := postForm("/upload", url.Values{"title": {"Sunset"}})
	w := serve(env, withSession(req, artistToken))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Image is required")
}

func TestLike(t *testing.T) {
	env := newTestEnv()
	env.engagement.On("ToggleLike", mock.Anything, fan, uint(4)).Return(&dto.LikeResult{Liked: true, Count: 3}, nil)

	req, _ := http.NewRequest(http.MethodPost, "/like/4", nil)
	w := serve(env, withSession(req, fanToken))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["like_count"])
	assert.Equal(t, true, body["is_liked"])
}

func TestLike_Anonymous(t *testing.T) {
	env := newTestEnv()

	req, _ := http.NewRequest(http.MethodPost, "/like/4", nil)
	w := serve(env, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"login required"}`, w.Body.String())
	env.engagement.AssertNotCalled(t, "ToggleLike", mock.Anything, mock.Anything, mock.Anything)
}

func TestLike_NotFound(t *testing.T) {
	env := newTestEnv()
	env.engagement.On("ToggleLike", mock.Anything, fan, uint(8)).Return(nil, service.ErrNotFound)

	req, _ := http.NewRequest(http.MethodPost, "/like/8", nil)
	w := serve(env, withSession(req, fanToken))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComment(t *testing.T) {
	env := newTestEnv()
	env.engagement.On("PostComment", mock.Anything, fan, uint(4), "Lovely").Return(&dto.CommentView{Body: "Lovely"}, nil)
	env.engagement.On("PostComment", mock.Anything, fan, uint(4), "").
		Return(nil, &service.ValidationError{Field: "comment", Message: "must not be empty"})

	w := serve(env, withSession(postForm("/comment/4", url.Values{"comment": {"Lovely"}}), fanToken))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/artwork/4#comments", w.Header().Get("Location"))

	w = serve(env, withSession(postForm("/comment/4", url.Values{"comment": {""}}), fanToken))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Comment must not be empty")

	w = serve(env, postForm("/comment/4", url.Values{"comment": {"hi"}}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAdminApprove(t *testing.T) {
	env := newTestEnv()
	env.moderation.On("ListPending", mock.Anything, admin).Return([]dto.ArtworkCard{{ID: 4}}, nil)
	env.moderation.On("Decide", mock.Anything, admin, uint(4), "approve").Return(nil)
	env.moderation.On("Decide", mock.Anything, admin, uint(99), "approve").Return(service.ErrNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/admin/approve", nil)
	w := serve(env, withSession(req, adminToken))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "queue|1|", w.Body.String())

	w = serve(env, withSession(postForm("/admin/approve", url.Values{"artwork_id": {"4"}, "action": {"approve"}}), adminToken))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/approve", w.Header().Get("Location"))

	w = serve(env, withSession(postForm("/admin/approve", url.Values{"artwork_id": {"99"}, "action": {"approve"}}), adminToken))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(env, withSession(postForm("/admin/approve", url.Values{"artwork_id": {"4"}, "action": {"approve"}}), artistToken))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	env.moderation.AssertNumberOfCalls(t, "Decide", 2)
}

func TestCheckConn(t *testing.T) {
	env := newTestEnv()

	req, _ := http.NewRequest(http.MethodGet, "/check-conn", nil)
	w := serve(env, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"connected"}`, w.Body.String())
}
