package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"resumecraft/resume-tailor/internal/models"
	"resumecraft/resume-tailor/internal/repositories"
	"resumecraft/resume-tailor/internal/services"
)

var errDuplicateUser = errors.New("duplicate user")

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) AllowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".pdf" || ext == ".docx"
}

func (f *fakeExtractor) ExtractText(filename string, data []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeAnalyzer struct {
	combined      *models.CombinedResponse
	combinedErr   error
	letter        string
	letterErr     error
	combinedCalls int
	letterCalls   int
}

func (f *fakeAnalyzer) GetCombinedAnalysis(ctx context.Context, resumeText, jdText string) (*models.CombinedResponse, error) {
	f.combinedCalls++
	if f.combinedErr != nil {
		return nil, f.combinedErr
	}
	return f.combined, nil
}

func (f *fakeAnalyzer) GenerateCoverLetter(ctx context.Context, resumeText, jdText string) (string, error) {
	f.letterCalls++
	if f.letterErr != nil {
		return "", f.letterErr
	}
	return f.letter, nil
}

type createdPair struct {
	resume   *models.Resume
	analysis *models.Analysis
}

type fakeResumeRepo struct {
	created  []createdPair
	resumes  map[uuid.UUID]*models.Resume
	analyses map[uuid.UUID]*models.Analysis
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{
		resumes:  make(map[uuid.UUID]*models.Resume),
		analyses: make(map[uuid.UUID]*models.Analysis),
	}
}

func (f *fakeResumeRepo) CreateWithAnalysis(resume *models.Resume, analysis *models.Analysis) error {
	resume.ID = uuid.New()
	analysis.ID = uuid.New()
	analysis.ResumeID = resume.ID
	f.created = append(f.created, createdPair{resume: resume, analysis: analysis})
	f.resumes[resume.ID] = resume
	f.analyses[analysis.ID] = analysis
	return nil
}

func (f *fakeResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	resume, ok := f.resumes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return resume, nil
}

func (f *fakeResumeRepo) FindByUser(userID uuid.UUID) ([]models.Resume, error) {
	var out []models.Resume
	for _, resume := range f.resumes {
		if resume.UserID != userID {
			continue
		}
		copied := *resume
		for _, analysis := range f.analyses {
			if analysis.ResumeID == resume.ID {
				copied.Analyses = append(copied.Analyses, *analysis)
			}
		}
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeResumeRepo) FindAnalysisByID(id uuid.UUID) (*models.Analysis, error) {
	analysis, ok := f.analyses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *analysis
	if resume, ok := f.resumes[analysis.ResumeID]; ok {
		copied.Resume = *resume
	}
	return &copied, nil
}

func (f *fakeResumeRepo) Delete(id uuid.UUID) error {
	if _, ok := f.resumes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.resumes, id)
	for analysisID, analysis := range f.analyses {
		if analysis.ResumeID == id {
			delete(f.analyses, analysisID)
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return errDuplicateUser
		}
	}
	user.ID = uuid.New()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) Delete(id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// testEnv wires a fiber app with fakes behind the real handlers and a
// test-only login route for establishing an authenticated session.
type testEnv struct {
	app       *fiber.App
	extractor *fakeExtractor
	analyzer  *fakeAnalyzer
	repo      *fakeResumeRepo
	users     *fakeUserRepo
	userID    uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		extractor: &fakeExtractor{text: "This is the mocked resume text."},
		analyzer:  &fakeAnalyzer{},
		repo:      newFakeResumeRepo(),
		users:     newFakeUserRepo(),
		userID:    uuid.New(),
	}

	store := session.New()
	sessions := NewSessionManager(store)

	analyzeHandler := NewAnalyzeHandler(env.extractor, env.analyzer, env.repo, sessions, 10485760)
	coverLetterHandler := NewCoverLetterHandler(env.analyzer, sessions)
	exportHandler := NewExportHandler(services.NewExporterService())
	authHandler := NewAuthHandler(env.users, sessions)
	dashboardHandler := NewDashboardHandler(env.repo, sessions)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/workflow", analyzeHandler.HandleWorkflow)
	api.Post("/cover-letter", coverLetterHandler.HandleGenerateCoverLetter)
	api.Post("/export/docx", exportHandler.HandleExportDocx)
	api.Post("/register", authHandler.HandleRegister)
	api.Post("/login", authHandler.HandleLogin)
	api.Post("/logout", authHandler.HandleLogout)
	api.Get("/resumes", dashboardHandler.HandleListResumes)
	api.Delete("/resumes/:id", dashboardHandler.HandleDeleteResume)
	api.Get("/analyses/:id", dashboardHandler.HandleGetAnalysis)

	app.Post("/test/login", func(c *fiber.Ctx) error {
		if err := sessions.Login(c, env.userID); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})

	env.app = app
	return env
}

// login establishes a session and returns the cookies to replay on
// subsequent requests.
func (env *testEnv) login(t *testing.T) []*http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/test/login", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return resp.Cookies()
}

// newAnalyzeRequest builds the multipart upload /api/analyze expects.
// Empty filename or jd omits that part entirely.
func newAnalyzeRequest(t *testing.T, filename, jd string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if filename != "" {
		part, err := writer.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader([]byte("fake file content")))
		require.NoError(t, err)
	}
	if jd != "" {
		require.NoError(t, writer.WriteField("job_description", jd))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newRequestWithCookies(method, target string, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func sampleCombined() *models.CombinedResponse {
	return &models.CombinedResponse{
		AnalysisResults: models.AnalysisResult{
			MatchScore:      95,
			MissingKeywords: []string{"synergy"},
		},
		StructuredResume: models.StructuredResume{
			FullName: "Test User",
		},
	}
}
