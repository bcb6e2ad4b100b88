package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/tahmid27/wavely/backend/internal/handlers"
	"github.com/tahmid27/wavely/backend/internal/middleware"
	"github.com/tahmid27/wavely/backend/internal/models"
	"github.com/tahmid27/wavely/backend/internal/repositories"
	"github.com/tahmid27/wavely/backend/internal/router"
	"github.com/tahmid27/wavely/backend/internal/service"
	"github.com/tahmid27/wavely/backend/validators"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

var dbSeq atomic.Int64

// stubPostRepo serves posts from memory so the handler stack can run
// without a Mongo instance.
type stubPostRepo struct {
	posts map[string]models.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]models.Post)}
}

func (r *stubPostRepo) add(id string, authorID uint) {
	r.posts[id] = models.Post{AuthorID: authorID}
}

func (r *stubPostRepo) Create(ctx context.Context, post *models.Post) error { return nil }

func (r *stubPostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return &post, nil
}

func (r *stubPostRepo) Delete(ctx context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) ListByAuthorIDs(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error) {
	return []models.Post{}, nil
}

type testApp struct {
	e     *echo.Echo
	db    *gorm.DB
	posts *stubPostRepo
}

// newTestApp wires the full HTTP stack (middleware, error handler,
// handlers, services) over an in-memory database and a stub post store.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Comment{}, &models.Like{},
		&models.Follow{}, &models.Bookmark{}, &models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	posts := newStubPostRepo()
	userRepo := repositories.NewPostgresUserRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)

	interactions := service.NewInteractionService(
		db, posts, userRepo, likeRepo, followRepo, bookmarkRepo,
		notificationRepo, false,
	)
	comments := service.NewCommentService(commentRepo, userRepo, 5)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	router.SetupMiddleware(e)

	open := e.Group("/api/v1")
	open.Use(middleware.OptionalAuth(testSecret))
	commentHandler := handlers.NewCommentHandler(comments, false)
	commentHandler.RegisterCreateRoutes(open)

	api := e.Group("/api/v1")
	api.Use(middleware.RequireAuth(testSecret))
	handlers.NewLikeHandler(interactions).RegisterLikeRoutes(api)
	handlers.NewFollowHandler(interactions).RegisterFollowRoutes(api)
	handlers.NewBookmarkHandler(interactions).RegisterBookmarkRoutes(api)
	commentHandler.RegisterListRoutes(api)

	return &testApp{e: e, db: db, posts: posts}
}

func token(t *testing.T, userID uint) string {
	t.Helper()
	claims := models.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func (a *testApp) do(method, path, bearer, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func rowCount(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestRequestsWithoutSessionAreRejected(t *testing.T) {
	app := newTestApp(t)
	app.posts.add("p1", 2)

	requests := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/v1/posts/p1/likes"},
		{http.MethodDelete, "/api/v1/posts/p1/likes"},
		{http.MethodPost, "/api/v1/users/2/followers"},
		{http.MethodDelete, "/api/v1/users/2/followers"},
		{http.MethodPost, "/api/v1/posts/p1/bookmark"},
		{http.MethodGet, "/api/v1/posts/p1/comments"},
	}
	for _, r := range requests {
		rec := app.do(r.method, r.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", r.method, r.path, rec.Code)
		}
		if msg := errorBody(t, rec); msg != "Unauthorized" {
			t.Errorf("%s %s: expected Unauthorized body, got %q", r.method, r.path, msg)
		}
	}

	// Rejection happens before any write.
	if n := rowCount(t, app.db, &models.Like{}); n != 0 {
		t.Fatalf("expected no likes written, got %d", n)
	}
	if n := rowCount(t, app.db, &models.Follow{}); n != 0 {
		t.Fatalf("expected no follows written, got %d", n)
	}
	if n := rowCount(t, app.db, &models.Notification{}); n != 0 {
		t.Fatalf("expected no notifications written, got %d", n)
	}
}

func TestLikeMissingPostReturns404(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/v1/posts/missing/likes", token(t, 1), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Post not found" {
		t.Fatalf("expected Post not found, got %q", msg)
	}
	if n := rowCount(t, app.db, &models.Like{}); n != 0 {
		t.Fatalf("expected no likes written, got %d", n)
	}
}

func TestFollowInvalidUserIDReturns400(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{"abc", "0"} {
		rec := app.do(http.MethodPost, "/api/v1/users/"+target+"/followers", token(t, 1), "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("target %q: expected 400, got %d", target, rec.Code)
		}
		if msg := errorBody(t, rec); msg != "User ID is required" {
			t.Errorf("target %q: unexpected body %q", target, msg)
		}
	}
}

func TestSelfFollowReturns400(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/v1/users/7/followers", token(t, 7), "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Cannot follow yourself" {
		t.Fatalf("unexpected body %q", msg)
	}
	if n := rowCount(t, app.db, &models.Follow{}); n != 0 {
		t.Fatalf("expected no follow edge, got %d", n)
	}
}

func TestLikeRoundTripOverHTTP(t *testing.T) {
	app := newTestApp(t)
	app.posts.add("p1", 2)
	caller := token(t, 1)

	rec := app.do(http.MethodPost, "/api/v1/posts/p1/likes", caller, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("like: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = app.do(http.MethodGet, "/api/v1/posts/p1/likes", caller, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", rec.Code)
	}
	var info service.LikeInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Likes != 1 || !info.IsLikedByUser {
		t.Fatalf("expected likes=1 liked=true, got %+v", info)
	}

	rec = app.do(http.MethodDelete, "/api/v1/posts/p1/likes", caller, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unlike: expected 200, got %d", rec.Code)
	}

	rec = app.do(http.MethodGet, "/api/v1/posts/p1/likes", caller, "")
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Likes != 0 || info.IsLikedByUser {
		t.Fatalf("expected likes=0 liked=false after unlike, got %+v", info)
	}
}

func TestBookmarkRoundTripOverHTTP(t *testing.T) {
	app := newTestApp(t)
	app.posts.add("p1", 2)
	caller := token(t, 1)

	rec := app.do(http.MethodPost, "/api/v1/posts/p1/bookmark", caller, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("bookmark: expected 200, got %d", rec.Code)
	}

	rec = app.do(http.MethodGet, "/api/v1/posts/p1/bookmark", caller, "")
	var info service.BookmarkInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !info.IsBookmarkedByUser {
		t.Fatalf("expected bookmarked, got %+v", info)
	}

	// Another user never sees the caller's bookmark.
	rec = app.do(http.MethodGet, "/api/v1/posts/p1/bookmark", token(t, 9), "")
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.IsBookmarkedByUser {
		t.Fatal("bookmark state leaked to another user")
	}
}

func TestCreateCommentBindsAuthorToSession(t *testing.T) {
	app := newTestApp(t)

	// The caller-supplied author id is ignored unless the trusted-author
	// compatibility mode is on.
	rec := app.do(http.MethodPost, "/api/v1/posts/p1/comments", token(t, 1),
		`{"content": "hello", "author_id": 99}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Comment models.CommentView `json:"comment"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Comment.AuthorID != 1 {
		t.Fatalf("expected author bound to session id 1, got %d", body.Comment.AuthorID)
	}
}

func TestCreateCommentAnonymousIsRejected(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/v1/posts/p1/comments", "", `{"content": "hello"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if n := rowCount(t, app.db, &models.Comment{}); n != 0 {
		t.Fatalf("expected no comment written, got %d", n)
	}
}

func TestCreateCommentValidatesContent(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/v1/posts/p1/comments", token(t, 1), `{"content": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListCommentsInvalidCursorReturns400(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/posts/p1/comments?cursor=abc", token(t, 1), "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Invalid cursor" {
		t.Fatalf("unexpected body %q", msg)
	}
}

func TestListCommentsOverHTTP(t *testing.T) {
	app := newTestApp(t)
	caller := token(t, 1)

	for i := 0; i < 7; i++ {
		rec := app.do(http.MethodPost, "/api/v1/posts/p1/comments", caller,
			fmt.Sprintf(`{"content": "comment %d"}`, i+1))
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d", i+1, rec.Code)
		}
	}

	rec := app.do(http.MethodGet, "/api/v1/posts/p1/comments", caller, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page models.CommentsPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Comments) != 5 {
		t.Fatalf("expected 5 comments on the first page, got %d", len(page.Comments))
	}
	if page.PreviousCursor == nil {
		t.Fatal("expected a previousCursor with 7 comments")
	}

	rec = app.do(http.MethodGet,
		fmt.Sprintf("/api/v1/posts/p1/comments?cursor=%d", *page.PreviousCursor), caller, "")
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Comments) != 2 || page.PreviousCursor != nil {
		t.Fatalf("expected final page of 2 with nil cursor, got %d comments, cursor %v",
			len(page.Comments), page.PreviousCursor)
	}
}

func TestUnknownErrorsAreNotLeaked(t *testing.T) {
	app := newTestApp(t)

	// Force a generic failure by dropping the likes table under the handler.
	if err := app.db.Migrator().DropTable(&models.Like{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	app.posts.add("p1", 2)

	rec := app.do(http.MethodPost, "/api/v1/posts/p1/likes", token(t, 1), "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != "Internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}
