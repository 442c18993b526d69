package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"resumepro/resume-analyzer/internal/models"
)

type ViewName string

const (
	ViewLanding    ViewName = "landing"
	ViewInput      ViewName = "input"
	ViewAnalyzing  ViewName = "analyzing"
	ViewResults    ViewName = "results"
	ViewHowItWorks ViewName = "how-it-works"
)

var (
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrNoStarsSelected   = errors.New("no star rating selected")
	ErrInvalidStars      = errors.New("stars must be between 1 and 5")
	ErrFeedbackClosed    = errors.New("feedback already recorded")
	ErrNoAnalysis        = errors.New("no analysis available")
)

// View is the tagged union of session states. Only the results variant
// carries a payload, so a results view without an analysis is
// unrepresentable.
type View interface {
	Name() ViewName
}

type LandingView struct{}

func (LandingView) Name() ViewName { return ViewLanding }

type InputView struct{}

func (InputView) Name() ViewName { return ViewInput }

type HowItWorksView struct{}

func (HowItWorksView) Name() ViewName { return ViewHowItWorks }

type AnalyzingView struct {
	Message string
}

func (AnalyzingView) Name() ViewName { return ViewAnalyzing }

// ResultsView owns the feedback prompt timer; leaving the view stops it, so
// re-entering results can never stack duplicate prompts.
type ResultsView struct {
	Analysis *models.AnalysisResult
	Jobs     []models.Job

	promptTimer *time.Timer
}

func (*ResultsView) Name() ViewName { return ViewResults }

// navigable lists the transitions a user can trigger directly. The analyze
// pipeline drives input->analyzing->results/input through its own methods.
var navigable = map[ViewName][]ViewName{
	ViewLanding:    {ViewInput, ViewHowItWorks},
	ViewHowItWorks: {ViewLanding},
	ViewInput:      {ViewLanding},
	ViewResults:    {ViewInput},
}

// Session holds one user's view state and the one-shot feedback lifecycle.
type Session struct {
	ID uuid.UUID

	mu           sync.Mutex
	view         View
	feedbackOpen bool
	feedbackDone bool
	lastActive   time.Time

	store       FeedbackStore
	promptDelay time.Duration
}

// SessionState is a consistent snapshot for rendering.
type SessionState struct {
	View             ViewName
	AnalyzingMessage string
	Analysis         *models.AnalysisResult
	Jobs             []models.Job
	FeedbackOpen     bool
	FeedbackDone     bool
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	state := SessionState{
		View:         s.view.Name(),
		FeedbackOpen: s.feedbackOpen,
		FeedbackDone: s.feedbackDone,
	}
	switch v := s.view.(type) {
	case AnalyzingView:
		state.AnalyzingMessage = v.Message
	case *ResultsView:
		state.Analysis = v.Analysis
		state.Jobs = v.Jobs
	}
	return state
}

// Results returns the current analysis payload, if the session is in the
// results view.
func (s *Session) Results() (*models.AnalysisResult, []models.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rv, ok := s.view.(*ResultsView)
	if !ok {
		return nil, nil, false
	}
	return rv.Analysis, rv.Jobs, true
}

// Navigate applies a user-triggered transition.
func (s *Session) Navigate(target ViewName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	current := s.view.Name()
	allowed := false
	for _, t := range navigable[current] {
		if t == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return invalidTransition(current, target)
	}

	s.leaveCurrentView()
	switch target {
	case ViewLanding:
		s.view = LandingView{}
	case ViewInput:
		s.view = InputView{}
	case ViewHowItWorks:
		s.view = HowItWorksView{}
	}
	return nil
}

// BeginAnalysis moves input->analyzing. The analyzing view is non-interactive
// and guards the single in-flight pipeline.
func (s *Session) BeginAnalysis() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.view.Name() != ViewInput {
		return invalidTransition(s.view.Name(), ViewAnalyzing)
	}
	s.view = AnalyzingView{Message: "Scanning document structure..."}
	return nil
}

func (s *Session) SetAnalyzingMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.view.(AnalyzingView); ok {
		s.view = AnalyzingView{Message: message}
	}
}

// CompleteAnalysis moves analyzing->results and schedules the feedback prompt
// unless this session already rated or skipped.
func (s *Session) CompleteAnalysis(analysis *models.AnalysisResult, jobs []models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if s.view.Name() != ViewAnalyzing {
		return invalidTransition(s.view.Name(), ViewResults)
	}

	rv := &ResultsView{Analysis: analysis, Jobs: jobs}
	if !s.feedbackDone {
		rv.promptTimer = time.AfterFunc(s.promptDelay, func() {
			s.openFeedback(rv)
		})
	}
	s.view = rv
	return nil
}

// FailAnalysis reverts analyzing->input after a pipeline failure.
func (s *Session) FailAnalysis() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view.Name() == ViewAnalyzing {
		s.view = InputView{}
	}
}

func (s *Session) openFeedback(rv *ResultsView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Only if the same results view instance is still showing.
	if current, ok := s.view.(*ResultsView); ok && current == rv && !s.feedbackDone {
		s.feedbackOpen = true
	}
}

// SubmitRating records a 1-5 star rating. Zero stars is rejected; the store
// write is fire-and-forget and never blocks dismissal.
func (s *Session) SubmitRating(stars int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if stars == 0 {
		return ErrNoStarsSelected
	}
	if stars < 0 || stars > 5 {
		return ErrInvalidStars
	}

	rv, ok := s.view.(*ResultsView)
	if !ok {
		return ErrNoAnalysis
	}
	if s.feedbackDone {
		return ErrFeedbackClosed
	}

	s.dismissFeedback(rv)
	s.saveRating(rv.Analysis, stars)
	return nil
}

// SkipRating records the skip marker (0 stars) and always dismisses the
// prompt, independent of write outcome.
func (s *Session) SkipRating() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	rv, ok := s.view.(*ResultsView)
	if !ok {
		return ErrNoAnalysis
	}
	if s.feedbackDone {
		return ErrFeedbackClosed
	}

	s.dismissFeedback(rv)
	s.saveRating(rv.Analysis, 0)
	return nil
}

func (s *Session) dismissFeedback(rv *ResultsView) {
	s.feedbackDone = true
	s.feedbackOpen = false
	if rv.promptTimer != nil {
		rv.promptTimer.Stop()
		rv.promptTimer = nil
	}
}

func (s *Session) saveRating(analysis *models.AnalysisResult, stars int) {
	rating := models.Rating{
		CandidateName:  "Anonymous",
		CandidateEmail: "No Email",
		Stars:          stars,
	}
	if analysis != nil {
		rating.ResumeScore = analysis.Score
		if analysis.CandidateProfile.Name != "" {
			rating.CandidateName = analysis.CandidateProfile.Name
		}
		if analysis.CandidateProfile.Email != "" {
			rating.CandidateEmail = analysis.CandidateProfile.Email
		}
	}

	go func() {
		if err := s.store.SaveRating(context.Background(), &rating); err != nil {
			log.Printf("⚠️  Failed to record rating: %v", err)
		}
	}()
}

// leaveCurrentView releases per-view resources. Callers hold s.mu.
func (s *Session) leaveCurrentView() {
	if rv, ok := s.view.(*ResultsView); ok {
		if rv.promptTimer != nil {
			rv.promptTimer.Stop()
			rv.promptTimer = nil
		}
		s.feedbackOpen = false
	}
}

func invalidTransition(from, to ViewName) error {
	return errInvalidTransition{from: from, to: to}
}

type errInvalidTransition struct {
	from, to ViewName
}

func (e errInvalidTransition) Error() string {
	return "invalid view transition: " + string(e.from) + " -> " + string(e.to)
}

func (errInvalidTransition) Is(target error) bool {
	return target == ErrInvalidTransition
}

// SessionManager tracks live sessions and sweeps idle ones.
type SessionManager interface {
	Create() *Session
	Get(id uuid.UUID) (*Session, bool)
	Start(ctx context.Context)
	Stop()
}

type sessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	store       FeedbackStore
	promptDelay time.Duration
	idleTTL     time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewSessionManager(store FeedbackStore, promptDelay, idleTTL time.Duration) SessionManager {
	return &sessionManager{
		sessions:    make(map[uuid.UUID]*Session),
		store:       store,
		promptDelay: promptDelay,
		idleTTL:     idleTTL,
		stopChan:    make(chan struct{}),
	}
}

func (m *sessionManager) Create() *Session {
	session := &Session{
		ID:          uuid.New(),
		view:        LandingView{},
		lastActive:  time.Now(),
		store:       m.store,
		promptDelay: m.promptDelay,
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

func (m *sessionManager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	return session, ok
}

// Start launches the idle-session sweeper.
func (m *sessionManager) Start(ctx context.Context) {
	m.wg.Add(1)
	go m.sweepIdleSessions(ctx)
}

func (m *sessionManager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		session.mu.Lock()
		session.leaveCurrentView()
		session.mu.Unlock()
		delete(m.sessions, id)
	}
}

func (m *sessionManager) sweepIdleSessions(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.idleTTL)
			m.mu.Lock()
			for id, session := range m.sessions {
				session.mu.Lock()
				idle := session.lastActive.Before(cutoff)
				if idle {
					session.leaveCurrentView()
				}
				session.mu.Unlock()
				if idle {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
