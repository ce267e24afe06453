package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"resumecraft/resume-tailor/internal/models"
)

const (
	sessionKeyUserID           = "user_id"
	sessionKeyStructuredResume = "structured_resume"
	sessionKeyResumeText       = "original_resume_text"
	sessionKeyJobDescription   = "original_jd_text"
)

// SessionManager wraps the fiber session store with the two concerns this
// service keeps per caller: the authenticated identity and the staged
// workflow state from the last analysis.
type SessionManager struct {
	store *session.Store
}

func NewSessionManager(store *session.Store) *SessionManager {
	return &SessionManager{store: store}
}

func (m *SessionManager) Login(c *fiber.Ctx, userID uuid.UUID) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionKeyUserID, userID.String())
	return sess.Save()
}

func (m *SessionManager) Logout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// CurrentUserID returns the authenticated caller, if any.
func (m *SessionManager) CurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return uuid.Nil, false
	}

	raw, ok := sess.Get(sessionKeyUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// StageWorkflow overwrites the staged state from any prior analysis.
// Last write wins; the workflow assumes one active analysis per session.
func (m *SessionManager) StageWorkflow(c *fiber.Ctx, state models.WorkflowState) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}

	structured, err := json.Marshal(state.StructuredResume)
	if err != nil {
		return err
	}

	sess.Set(sessionKeyStructuredResume, string(structured))
	sess.Set(sessionKeyResumeText, state.ResumeText)
	sess.Set(sessionKeyJobDescription, state.JobDescription)
	return sess.Save()
}

// LoadWorkflow reads back the staged state. ok is false when the session
// expired or no analysis ran yet; downstream operations must then tell the
// caller to re-run analysis rather than re-derive anything themselves.
func (m *SessionManager) LoadWorkflow(c *fiber.Ctx) (models.WorkflowState, bool) {
	var state models.WorkflowState

	sess, err := m.store.Get(c)
	if err != nil {
		return state, false
	}

	resumeText, _ := sess.Get(sessionKeyResumeText).(string)
	jdText, _ := sess.Get(sessionKeyJobDescription).(string)
	structured, _ := sess.Get(sessionKeyStructuredResume).(string)

	if resumeText == "" || jdText == "" {
		return state, false
	}

	state.ResumeText = resumeText
	state.JobDescription = jdText
	if structured != "" {
		_ = json.Unmarshal([]byte(structured), &state.StructuredResume)
	}
	return state, true
}
