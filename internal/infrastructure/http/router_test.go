package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	authuc "github.com/pksaconstruction/pksa-api/internal/application/auth"
	"github.com/pksaconstruction/pksa-api/internal/application/contact"
	"github.com/pksaconstruction/pksa-api/internal/application/project"
	"github.com/pksaconstruction/pksa-api/internal/domain"
	infraauth "github.com/pksaconstruction/pksa-api/internal/infrastructure/auth"
	"github.com/pksaconstruction/pksa-api/internal/infrastructure/http/handlers"
	"github.com/pksaconstruction/pksa-api/internal/infrastructure/http/middleware"
)

type fakeMessages struct {
	items   []domain.ContactMessage
	nextID  int
	saveErr error
}

func (f *fakeMessages) Save(_ context.Context, in domain.ContactMessageInput) (*domain.ContactMessage, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.nextID++
	msg := domain.ContactMessage{
		ID:          fmt.Sprintf("m%03d", f.nextID),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Subject:     in.Subject,
		Message:     in.Message,
		SubmittedAt: time.Now(),
	}
	f.items = append([]domain.ContactMessage{msg}, f.items...)
	return &msg, nil
}

func (f *fakeMessages) List(_ context.Context) ([]domain.ContactMessage, error) {
	return f.items, nil
}

func (f *fakeMessages) Delete(_ context.Context, id string) (bool, error) {
	for i, m := range f.items {
		if m.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeProjects struct {
	items  []domain.ProjectSubmission
	nextID int
}

func (f *fakeProjects) Save(_ context.Context, in domain.ProjectSubmissionInput) (*domain.ProjectSubmission, error) {
	f.nextID++
	rec := domain.ProjectSubmission{
		ID:              fmt.Sprintf("p%03d", f.nextID),
		Title:           in.Title,
		Category:        in.Category,
		Description:     in.Description,
		Location:        in.Location,
		Year:            in.Year,
		Size:            in.Size,
		Status:          in.Status,
		FullDescription: in.FullDescription,
		Files:           in.Files,
		SubmittedAt:     time.Now(),
	}
	f.items = append([]domain.ProjectSubmission{rec}, f.items...)
	return &rec, nil
}

func (f *fakeProjects) List(_ context.Context) ([]domain.ProjectSubmission, error) {
	return f.items, nil
}

func (f *fakeProjects) GetByID(_ context.Context, id string) (*domain.ProjectSubmission, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, nil
}

func (f *fakeProjects) Delete(_ context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeSettings struct {
	saved *domain.AppSettings
}

func (f *fakeSettings) Get(_ context.Context) (*domain.AppSettings, error) {
	if f.saved == nil {
		return &domain.AppSettings{}, nil
	}
	return f.saved, nil
}

func (f *fakeSettings) Update(_ context.Context, s domain.AppSettings) (*domain.AppSettings, error) {
	f.saved = &s
	return f.saved, nil
}

type fakeStore struct {
	uploads []string
	removed []string
}

func (f *fakeStore) Upload(_ context.Context, path string, _ []byte, _ string) error {
	f.uploads = append(f.uploads, path)
	return nil
}

func (f *fakeStore) Remove(_ context.Context, path string) error {
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeStore) PublicURL(path string) string {
	return "https://files.test/" + path
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) NotifyContactMessage(_ context.Context, msg *domain.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg.Subject)
	return nil
}

type testEnv struct {
	srv      *httptest.Server
	messages *fakeMessages
	projects *fakeProjects
	settings *fakeSettings
	store    *fakeStore
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	env := &testEnv{
		messages: &fakeMessages{},
		projects: &fakeProjects{},
		settings: &fakeSettings{},
		store:    &fakeStore{},
		notifier: &fakeNotifier{},
	}

	sessions := infraauth.NewSessions(false)
	router := NewRouter(RouterConfig{
		ContactHandler:  handlers.NewContactHandler(contact.NewSubmit(env.messages, env.notifier, log), false, log),
		AdminHandler:    handlers.NewAdminHandler(authuc.NewLogin("admin@pksa.com", "admin123"), sessions, env.messages, log),
		ProjectHandler:  handlers.NewProjectHandler(env.projects, project.NewUpload(env.projects, env.store, log), project.NewDelete(env.projects, env.store, log), log),
		SettingsHandler: handlers.NewSettingsHandler(env.settings, log),
		RequireAdmin:    middleware.RequireAdminSession(sessions),
		Log:             log,
	})
	env.srv = httptest.NewServer(router)
	t.Cleanup(env.srv.Close)
	return env
}

func (e *testEnv) postJSON(t *testing.T, path string, body interface{}, cookie *http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()
	return e.do(t, http.MethodPost, path, jsonBody(t, body), "application/json", cookie)
}

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, contentType string, cookie *http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, e.srv.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := e.srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp, payload
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	resp, err := e.srv.Client().Post(e.srv.URL+"/api/admin/login", "application/json",
		strings.NewReader(`{"email":"admin@pksa.com","password":"admin123"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == infraauth.CookieName {
			return c
		}
	}
	t.Fatal("login response has no session cookie")
	return nil
}

func TestContactSubmitAppearsInAdminInbox(t *testing.T) {
	env := newTestEnv(t)

	resp, payload := env.postJSON(t, "/api/contact", map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "New office build",
		"message": "We need a quote.",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d, want 200", resp.StatusCode)
	}
	if payload["success"] != true {
		t.Fatalf("submit success = %v, want true", payload["success"])
	}
	if payload["emailSent"] != true {
		t.Fatalf("emailSent = %v, want true", payload["emailSent"])
	}

	cookie := env.login(t)
	resp, payload = env.do(t, http.MethodGet, "/api/admin/contact-messages", nil, "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	messages, ok := payload["messages"].([]interface{})
	if !ok || len(messages) != 1 {
		t.Fatalf("messages = %v, want one entry", payload["messages"])
	}
	first := messages[0].(map[string]interface{})
	if first["subject"] != "New office build" {
		t.Errorf("subject = %v, want %q", first["subject"], "New office build")
	}
	if first["phone"] != nil {
		t.Errorf("phone = %v, want null", first["phone"])
	}
}

func TestContactSubmitSucceedsWhenEmailFails(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.err = fmt.Errorf("smtp connect refused")

	resp, payload := env.postJSON(t, "/api/contact", map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Hello",
		"message": "Hi.",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload["success"] != true {
		t.Fatalf("success = %v, want true", payload["success"])
	}
	if payload["emailSent"] != false {
		t.Fatalf("emailSent = %v, want false", payload["emailSent"])
	}
	if !strings.Contains(payload["message"].(string), "email notification failed") {
		t.Errorf("message = %v, want degraded-delivery text", payload["message"])
	}
}

func TestContactSubmitFailsWhenStoreFails(t *testing.T) {
	env := newTestEnv(t)
	env.messages.saveErr = fmt.Errorf("db down")

	resp, payload := env.postJSON(t, "/api/contact", map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Hello",
		"message": "Hi.",
	}, nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if payload["success"] != false {
		t.Fatalf("success = %v, want false when nothing was stored", payload["success"])
	}
	if payload["emailSent"] != true {
		t.Errorf("emailSent = %v, want true", payload["emailSent"])
	}
	if payload["data"] != nil {
		t.Errorf("data = %v, want null", payload["data"])
	}
	if len(env.notifier.sent) != 1 {
		t.Errorf("notification should still go out, sent=%v", env.notifier.sent)
	}
}

func TestContactSubmitValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, payload := env.postJSON(t, "/api/contact", map[string]string{
		"name": "Jane", "email": "jane@example.com",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if payload["message"] != "Please fill in all required fields" {
		t.Errorf("message = %v", payload["message"])
	}

	resp, payload = env.postJSON(t, "/api/contact", map[string]string{
		"name": "Jane", "email": "not-an-email", "subject": "s", "message": "m",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if payload["message"] != "Please provide a valid email address" {
		t.Errorf("message = %v", payload["message"])
	}
	if len(env.messages.items) != 0 {
		t.Errorf("invalid submissions were stored: %v", env.messages.items)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/contact-messages"},
		{http.MethodDelete, "/api/admin/contact-messages/delete"},
		{http.MethodGet, "/api/admin/settings"},
		{http.MethodPut, "/api/admin/settings"},
		{http.MethodPost, "/api/admin/logout"},
		{http.MethodPost, "/api/projects/upload"},
		{http.MethodDelete, "/api/projects/p001"},
	}
	for _, p := range paths {
		resp, payload := env.do(t, p.method, p.path, nil, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", p.method, p.path, resp.StatusCode)
		}
		if payload["message"] != "Unauthorized. Admin access required." {
			t.Errorf("%s %s message = %v", p.method, p.path, payload["message"])
		}
	}

	// Stale cookie value is rejected the same way.
	resp, _ := env.do(t, http.MethodGet, "/api/admin/contact-messages", nil, "",
		&http.Cookie{Name: infraauth.CookieName, Value: "forged"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("forged cookie status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	resp, payload := env.postJSON(t, "/api/admin/login", map[string]string{
		"email": "admin@pksa.com", "password": "wrong",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if payload["message"] != "Invalid email or password" {
		t.Errorf("message = %v", payload["message"])
	}

	resp, payload = env.do(t, http.MethodGet, "/api/admin/session", nil, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session status = %d, want 200", resp.StatusCode)
	}
	if payload["authenticated"] != false {
		t.Errorf("authenticated = %v, want false", payload["authenticated"])
	}

	cookie := env.login(t)
	_, payload = env.do(t, http.MethodGet, "/api/admin/session", nil, "", cookie)
	if payload["authenticated"] != true {
		t.Errorf("authenticated = %v, want true", payload["authenticated"])
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	req, _ := http.NewRequest(http.MethodPost, env.srv.URL+"/api/admin/logout", nil)
	req.AddCookie(cookie)
	resp, err := env.srv.Client().Do(req)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", resp.StatusCode)
	}
	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == infraauth.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout did not expire the session cookie")
	}
}

func TestDeleteContactMessage(t *testing.T) {
	env := newTestEnv(t)
	env.postJSON(t, "/api/contact", map[string]string{
		"name": "Jane", "email": "jane@example.com", "subject": "s", "message": "m",
	}, nil)
	cookie := env.login(t)

	resp, payload := env.do(t, http.MethodDelete, "/api/admin/contact-messages/delete",
		strings.NewReader(`{"id":"m001"}`), "application/json", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}
	if payload["message"] != "Message deleted successfully" {
		t.Errorf("message = %v", payload["message"])
	}

	resp, payload = env.do(t, http.MethodDelete, "/api/admin/contact-messages/delete",
		strings.NewReader(`{"id":"m001"}`), "application/json", cookie)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
	if payload["message"] != "Message not found" {
		t.Errorf("message = %v", payload["message"])
	}
}

func uploadForm(t *testing.T, fields map[string]string, fileNames []string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, name := range fileNames {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("image-bytes")); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestProjectUploadListAndDelete(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	body, contentType := uploadForm(t, map[string]string{
		"title":       "Riverside Apartments",
		"category":    "Residential",
		"description": "40-unit complex",
		"location":    "Kigali",
	}, []string{"site photo.jpg"})
	resp, payload := env.do(t, http.MethodPost, "/api/projects/upload", body, contentType, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status = %d, want 200: %v", resp.StatusCode, payload)
	}
	if payload["message"] != "Project uploaded successfully!" {
		t.Errorf("message = %v", payload["message"])
	}
	if len(env.store.uploads) != 1 || !strings.HasSuffix(env.store.uploads[0], "-site_photo.jpg") {
		t.Fatalf("stored objects = %v", env.store.uploads)
	}

	resp, payload = env.do(t, http.MethodGet, "/api/projects", nil, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	projects := payload["projects"].([]interface{})
	if len(projects) != 1 {
		t.Fatalf("projects = %v, want one entry", projects)
	}
	first := projects[0].(map[string]interface{})
	wantImage := "https://files.test/" + env.store.uploads[0]
	if first["image"] != wantImage {
		t.Errorf("image = %v, want %q", first["image"], wantImage)
	}
	if first["fullDescription"] != "40-unit complex" {
		t.Errorf("fullDescription = %v, want description fallback", first["fullDescription"])
	}
	id := first["id"].(string)

	resp, _ = env.do(t, http.MethodGet, "/api/projects/"+id, nil, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodDelete, "/api/projects/"+id, nil, "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}
	if len(env.store.removed) != 1 {
		t.Errorf("removed objects = %v, want the uploaded file", env.store.removed)
	}

	resp, _ = env.do(t, http.MethodGet, "/api/projects/"+id, nil, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestProjectUploadWithoutFilesUsesPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	body, contentType := uploadForm(t, map[string]string{
		"title":       "Ring Road",
		"category":    "Infrastructure",
		"description": "12km arterial road",
	}, nil)
	resp, _ := env.do(t, http.MethodPost, "/api/projects/upload", body, contentType, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status = %d, want 200", resp.StatusCode)
	}

	_, payload := env.do(t, http.MethodGet, "/api/projects", nil, "", nil)
	first := payload["projects"].([]interface{})[0].(map[string]interface{})
	if first["image"] != domain.PlaceholderImage {
		t.Errorf("image = %v, want %q", first["image"], domain.PlaceholderImage)
	}
	files := first["files"].([]interface{})
	if len(files) != 0 {
		t.Errorf("files = %v, want empty array", files)
	}
}

func TestProjectUploadRejectsInvalidCategory(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	body, contentType := uploadForm(t, map[string]string{
		"title":       "Thing",
		"category":    "Cathedral",
		"description": "desc",
	}, nil)
	resp, payload := env.do(t, http.MethodPost, "/api/projects/upload", body, contentType, cookie)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if payload["message"] != "Invalid project category" {
		t.Errorf("message = %v", payload["message"])
	}

	body, contentType = uploadForm(t, map[string]string{"title": "Thing"}, nil)
	resp, payload = env.do(t, http.MethodPost, "/api/projects/upload", body, contentType, cookie)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if payload["message"] != "Please fill in all required fields (Title, Category, Description)" {
		t.Errorf("message = %v", payload["message"])
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	// Never-saved settings come back as nulls, not an error.
	resp, payload := env.do(t, http.MethodGet, "/api/settings", nil, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public get status = %d, want 200", resp.StatusCode)
	}
	settings := payload["settings"].(map[string]interface{})
	if settings["companyName"] != nil {
		t.Errorf("companyName = %v, want null", settings["companyName"])
	}

	cookie := env.login(t)
	resp, payload = env.do(t, http.MethodPut, "/api/admin/settings",
		strings.NewReader(`{"companyName":"PKSA Construction","contactEmail":"info@pksa.com"}`),
		"application/json", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	settings = payload["settings"].(map[string]interface{})
	if settings["companyName"] != "PKSA Construction" {
		t.Errorf("companyName = %v", settings["companyName"])
	}
	if settings["heroVideoUrl"] != nil {
		t.Errorf("heroVideoUrl = %v, want null after full overwrite", settings["heroVideoUrl"])
	}

	// Saving the same body again is an upsert of the one row, not a second
	// record: the returned settings are identical.
	resp, payload = env.do(t, http.MethodPut, "/api/admin/settings",
		strings.NewReader(`{"companyName":"PKSA Construction","contactEmail":"info@pksa.com"}`),
		"application/json", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second update status = %d, want 200", resp.StatusCode)
	}
	if !reflect.DeepEqual(payload["settings"], settings) {
		t.Errorf("repeated update returned %v, want %v", payload["settings"], settings)
	}

	_, payload = env.do(t, http.MethodGet, "/api/settings", nil, "", nil)
	stored := payload["settings"].(map[string]interface{})
	if !reflect.DeepEqual(stored, settings) {
		t.Errorf("stored settings = %v, want %v", stored, settings)
	}
	if stored["contactEmail"] != "info@pksa.com" {
		t.Errorf("public settings contactEmail = %v", stored["contactEmail"])
	}
}
